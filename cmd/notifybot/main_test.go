package main

import (
	"errors"
	"testing"

	"notifybot/internal/domain"
)

func TestSendExitCodes(t *testing.T) {
	cases := []struct {
		kind domain.FaultKind
		want int
	}{
		{domain.FaultEmptyInput, 1},
		{domain.FaultConfig, 2},
		{domain.FaultRecipientNotFound, 3},
		{domain.FaultDelivery, 3},
		{domain.FaultPlatform, 3},
		{domain.FaultRateLimit, 3},
		{domain.FaultInputStream, 4},
	}
	for _, tc := range cases {
		err := domain.NewFault(tc.kind, "boom")
		if got := sendExits.code(err); got != tc.want {
			t.Fatalf("send %v: code = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestPurgeExitCodes(t *testing.T) {
	cases := []struct {
		kind domain.FaultKind
		want int
	}{
		{domain.FaultConfig, 1},
		{domain.FaultPlatform, 2},
		{domain.FaultDelivery, 2},
		{domain.FaultRecipientNotFound, 2},
		{domain.FaultRateLimit, 3},
	}
	for _, tc := range cases {
		err := domain.NewFault(tc.kind, "boom")
		if got := purgeExits.code(err); got != tc.want {
			t.Fatalf("purge %v: code = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestUntaggedErrorsTakeThePlatformCode(t *testing.T) {
	err := errors.New("something escaped the run")
	if got := sendExits.code(err); got != 3 {
		t.Fatalf("send fallback = %d, want 3", got)
	}
	if got := purgeExits.code(err); got != 2 {
		t.Fatalf("purge fallback = %d, want 2", got)
	}
}
