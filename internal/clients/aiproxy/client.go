package aiproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/envutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// TurnRequest is one user utterance forwarded to the roleplay AI service.
type TurnRequest struct {
	Topic    string `json:"topic"`
	AIRole   string `json:"ai_role"`
	UserRole string `json:"user_role"`
	Message  string `json:"message"`
}

type VocaSuggestion struct {
	Word      string  `json:"word"`
	MeaningKo *string `json:"meaningKo,omitempty"`
	Example   *string `json:"example,omitempty"`
}

// TurnReply is the AI service's structured answer. Score and the feedback
// fields are optional; Categories may be absent, in which case the caller
// derives them from the commentary.
type TurnReply struct {
	Reply      string           `json:"reply"`
	Score      *float64         `json:"score,omitempty"`
	Grammar    string           `json:"grammar,omitempty"`
	Vocabulary string           `json:"vocabulary,omitempty"`
	Suggestion string           `json:"suggestion,omitempty"`
	Categories []string         `json:"categories,omitempty"`
	Voca       []VocaSuggestion `json:"voca,omitempty"`
}

// Client talks to the external roleplay AI service.
type Client interface {
	Start(ctx context.Context, topic, aiRole, userRole string) error
	Send(ctx context.Context, req TurnRequest) (*TurnReply, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) Client {
	clientLog := log.With("client", "AIProxy")

	baseURL := strings.TrimRight(envutil.GetEnv("AI_PROXY_URL", "http://localhost:8000", log), "/")
	timeoutSec := envutil.GetEnvAsInt("AI_PROXY_TIMEOUT_SECONDS", 60, log)

	return &client{
		log:        clientLog,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (c *client) Start(ctx context.Context, topic, aiRole, userRole string) error {
	payload := map[string]string{
		"topic":     topic,
		"ai_role":   aiRole,
		"user_role": userRole,
	}
	_, err := c.post(ctx, "/api/text/start", payload)
	return err
}

func (c *client) Send(ctx context.Context, req TurnRequest) (*TurnReply, error) {
	body, err := c.post(ctx, "/api/text/send", req)
	if err != nil {
		return nil, err
	}
	var reply TurnReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("decode AI reply: %w", err)
	}
	// Legacy free-text shape: feedback embedded in the reply body.
	if reply.Grammar == "" && reply.Vocabulary == "" && reply.Suggestion == "" {
		parsed := ParseFeedbackText(reply.Reply)
		if parsed.Found {
			reply.Reply = parsed.Reply
			reply.Grammar = parsed.Grammar
			reply.Vocabulary = parsed.Vocabulary
			reply.Suggestion = parsed.Suggestion
			if len(reply.Voca) == 0 {
				reply.Voca = ExtractVocaSuggestions(parsed.Vocabulary, parsed.Suggestion, req.Message)
			}
		}
	}
	return &reply, nil
}

func (c *client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("AI proxy request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read AI proxy response: %w", err)
	}
	// A misconfigured proxy answers with an HTML error page; surface that as
	// a readable error instead of failing on the JSON decode.
	if ct, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "json") {
		return nil, fmt.Errorf("AI proxy returned %s (status %d) from %s%s; check AI_PROXY_URL", ct, resp.StatusCode, c.baseURL, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("AI proxy status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
