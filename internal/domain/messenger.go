package domain

import "context"

// Message is one remote message in the DM conversation. It is consumed
// page by page during a purge and never retained past the batch.
type Message struct {
	ID       string
	AuthorID string
	Content  string
}

// Sender is the interface for platform clients that can deliver a
// single notification to the configured recipient (Discord, Telegram).
type Sender interface {
	Name() string

	// Connect authenticates and blocks until the platform reports ready
	// or fails, whichever happens first. It must be called before any
	// other operation.
	Connect(ctx context.Context) error

	// AsyncErr delivers client-level faults that arrive after login,
	// independent of the request/response flow. A nil channel means the
	// platform has no asynchronous session to fail.
	AsyncErr() <-chan error

	// Resolve maps the recipient identifier to a conversation.
	Resolve(ctx context.Context, recipientID string) error

	// Send transmits text into the resolved conversation. One attempt,
	// no retry.
	Send(ctx context.Context, text string) error

	Close() error
}

// Purger extends Sender with backward pagination and deletion over the
// resolved conversation. Platforms without history access (Telegram's
// Bot API) do not implement it.
type Purger interface {
	Sender

	// BotUserID is the authenticated account's own identifier.
	BotUserID() string

	// Messages returns up to limit messages strictly older than
	// beforeID, newest first. An empty beforeID starts from the
	// conversation head.
	Messages(ctx context.Context, beforeID string, limit int) ([]Message, error)

	// Delete removes a single message from the conversation.
	Delete(ctx context.Context, messageID string) error
}
