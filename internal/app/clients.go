package app

import (
	"fmt"

	"github.com/yerinchoi/lingotalk-backend/internal/clients/aiproxy"
	"github.com/yerinchoi/lingotalk-backend/internal/clients/gcp"
	"github.com/yerinchoi/lingotalk-backend/internal/clients/redis"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
	"github.com/yerinchoi/lingotalk-backend/internal/platform/localmedia"
)

type Clients struct {
	AIProxy     aiproxy.Client
	Sessions    redis.SessionStore
	Transcriber gcp.Transcriber
	Media       localmedia.Store
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	sessions, err := redis.NewSessionStore(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init session store: %w", err)
	}

	media, err := localmedia.NewStore(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init media store: %w", err)
	}

	var transcriber gcp.Transcriber
	if cfg.EnableVoice {
		t, err := gcp.NewSpeechTranscriber(log)
		if err != nil {
			log.Warn("Speech transcriber unavailable, voice turns disabled", "error", err)
		} else {
			transcriber = t
		}
	}

	return Clients{
		AIProxy:     aiproxy.NewClient(log),
		Sessions:    sessions,
		Transcriber: transcriber,
		Media:       media,
	}, nil
}
