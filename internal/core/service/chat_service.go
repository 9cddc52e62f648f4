package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ChatService answers assistant messages. When an upstream assistant origin
// is configured it forwards the message there with a single attempt; in all
// other cases it falls back to a canned tailoring answer so the chat widget
// never hard-fails.
type ChatService struct {
	upstreamURL string
	client      *http.Client
	log         zerolog.Logger
}

func NewChatService(upstreamURL string, log zerolog.Logger) *ChatService {
	return &ChatService{
		upstreamURL: upstreamURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

type chatPayload struct {
	Message string `json:"message"`
}

type chatReply struct {
	Response string `json:"response"`
}

func (s *ChatService) Chat(ctx context.Context, message string) (string, error) {
	if s.upstreamURL == "" {
		return cannedAnswer(message), nil
	}

	reply, err := s.forward(ctx, message)
	if err != nil {
		s.log.Warn().Err(err).Msg("assistant upstream failed, using fallback")
		return cannedAnswer(message), nil
	}
	return reply, nil
}

func (s *ChatService) forward(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(chatPayload{Message: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.upstreamURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("assistant upstream: status %d", resp.StatusCode)
	}

	var out chatReply
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func cannedAnswer(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "price") || strings.Contains(m, "cost"):
		return "Prices are set by each tailor on their service listing. Browse the marketplace to compare offers."
	case strings.Contains(m, "job"):
		return "Post a job with your budget and up to five reference photos. Tailors will reach out once it is approved."
	case strings.Contains(m, "delivery") || strings.Contains(m, "turnaround"):
		return "Each service shows its turnaround, from 1-2 days express work to 2 weeks for bespoke pieces."
	default:
		return "I can help with posting jobs, finding tailor services, and questions about orders. What do you need?"
	}
}
