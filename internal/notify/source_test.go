package notify

import (
	"errors"
	"strings"
	"testing"

	"notifybot/internal/domain"
)

type failingReader struct{ err error }

func (r failingReader) Read(p []byte) (int, error) { return 0, r.err }

func TestReadMessage_TrimsWhitespace(t *testing.T) {
	got, err := ReadMessage(strings.NewReader("  Hello, World!\n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello, World!" {
		t.Fatalf("got %q, want %q", got, "Hello, World!")
	}
}

func TestReadMessage_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t\n"} {
		_, err := ReadMessage(strings.NewReader(in))
		if err == nil {
			t.Fatalf("input %q: expected error", in)
		}
		if domain.KindOf(err) != domain.FaultEmptyInput {
			t.Fatalf("input %q: kind = %v, want empty-input", in, domain.KindOf(err))
		}
	}
}

func TestReadMessage_StreamFault(t *testing.T) {
	readErr := errors.New("pipe broke")
	_, err := ReadMessage(failingReader{err: readErr})
	if domain.KindOf(err) != domain.FaultInputStream {
		t.Fatalf("kind = %v, want input-stream", domain.KindOf(err))
	}
	if !errors.Is(err, readErr) {
		t.Fatalf("error %v does not wrap the read failure", err)
	}
}
