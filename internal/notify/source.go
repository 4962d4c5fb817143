// Package notify implements the send path: reading the message from
// standard input and delivering it as a single direct message.
package notify

import (
	"io"
	"strings"

	"notifybot/internal/domain"
)

// ReadMessage drains r to end-of-stream, concatenating all bytes as
// UTF-8 text, and returns the result trimmed of surrounding whitespace.
// It must complete before the platform client authenticates so a run
// never holds an open session while waiting on interactive input.
func ReadMessage(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", domain.NewFault(domain.FaultInputStream, "read message from stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", domain.NewFault(domain.FaultEmptyInput, "empty message on stdin")
	}
	return text, nil
}
