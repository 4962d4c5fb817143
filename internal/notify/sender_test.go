package notify

import (
	"context"
	"testing"

	"notifybot/internal/domain"
)

type mockSender struct {
	resolved   []string
	sent       []string
	resolveErr error
	sendErr    error
}

func (m *mockSender) Name() string                      { return "mock" }
func (m *mockSender) Connect(ctx context.Context) error { return nil }
func (m *mockSender) AsyncErr() <-chan error            { return nil }
func (m *mockSender) Close() error                      { return nil }

func (m *mockSender) Resolve(ctx context.Context, recipientID string) error {
	m.resolved = append(m.resolved, recipientID)
	return m.resolveErr
}

func (m *mockSender) Send(ctx context.Context, text string) error {
	m.sent = append(m.sent, text)
	return m.sendErr
}

func TestDeliver_ExactlyOneSend(t *testing.T) {
	m := &mockSender{}
	if err := Deliver(context.Background(), m, "user-1", "Hello, World!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.resolved) != 1 || m.resolved[0] != "user-1" {
		t.Fatalf("resolved = %v, want one call for user-1", m.resolved)
	}
	if len(m.sent) != 1 || m.sent[0] != "Hello, World!" {
		t.Fatalf("sent = %v, want exactly one send of the exact text", m.sent)
	}
}

func TestDeliver_ResolveFailureSkipsSend(t *testing.T) {
	m := &mockSender{resolveErr: domain.NewFault(domain.FaultRecipientNotFound, "no such user")}
	err := Deliver(context.Background(), m, "ghost", "hi")
	if domain.KindOf(err) != domain.FaultRecipientNotFound {
		t.Fatalf("kind = %v, want recipient-not-found", domain.KindOf(err))
	}
	if len(m.sent) != 0 {
		t.Fatalf("send was attempted after failed resolution: %v", m.sent)
	}
}

func TestDeliver_SendFaultPropagates(t *testing.T) {
	m := &mockSender{sendErr: domain.NewFault(domain.FaultDelivery, "cannot message this user")}
	err := Deliver(context.Background(), m, "user-1", "hi")
	if domain.KindOf(err) != domain.FaultDelivery {
		t.Fatalf("kind = %v, want delivery", domain.KindOf(err))
	}
	if len(m.sent) != 1 {
		t.Fatalf("expected single attempt, got %d", len(m.sent))
	}
}
