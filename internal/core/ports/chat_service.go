package ports

import "context"

// ChatService answers a single assistant message. Implementations must not
// fail the request when the upstream assistant is unavailable.
type ChatService interface {
	Chat(ctx context.Context, message string) (string, error)
}
