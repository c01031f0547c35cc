package gcp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// Transcriber turns a short spoken utterance into text for the voice chat
// pipeline.
type Transcriber interface {
	TranscribeBytes(ctx context.Context, audio []byte, mimeType, languageCode string) (*Transcript, error)
	Close() error
}

type Transcript struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type speechTranscriber struct {
	log    *logger.Logger
	client *speech.Client
}

func NewSpeechTranscriber(log *logger.Logger) (Transcriber, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	clientLog := log.With("client", "GCPSpeech")

	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))

	ctx := context.Background()
	var (
		c   *speech.Client
		err error
	)
	if creds != "" {
		c, err = speech.NewClient(ctx, option.WithCredentialsFile(creds))
	} else {
		c, err = speech.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	return &speechTranscriber{log: clientLog, client: c}, nil
}

func (s *speechTranscriber) TranscribeBytes(ctx context.Context, audio []byte, mimeType, languageCode string) (*Transcript, error) {
	ctx = ctxutil.Default(ctx)
	// Voice-chat turns are a few seconds long; keep the bound tight.
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if len(audio) == 0 {
		return &Transcript{}, nil
	}
	if languageCode == "" {
		languageCode = "en-US"
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   inferEncoding(mimeType),
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.client.Recognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}

	var (
		parts      []string
		confidence *float64
	)
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		parts = append(parts, alts[0].GetTranscript())
		if confidence == nil {
			conf := float64(alts[0].GetConfidence())
			confidence = &conf
		}
	}

	return &Transcript{
		Text:       strings.TrimSpace(strings.Join(parts, " ")),
		Confidence: confidence,
	}, nil
}

func (s *speechTranscriber) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mt, "webm"), strings.Contains(mt, "opus"):
		return speechpb.RecognitionConfig_WEBM_OPUS
	case strings.Contains(mt, "ogg"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(mt, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(mt, "wav"), strings.Contains(mt, "l16"), strings.Contains(mt, "pcm"):
		return speechpb.RecognitionConfig_LINEAR16
	}
	return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
}
