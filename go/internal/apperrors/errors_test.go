package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("failed to debit: %w", ErrInsufficientFunds)
	if got := KindOf(err); got != KindInsufficientFunds {
		t.Fatalf("expected %s, got %s", KindInsufficientFunds, got)
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected errors.Is to match sentinel")
	}
}

func TestKindOfUnclassified(t *testing.T) {
	err := fmt.Errorf("failed to query: %w", errors.New("connection refused"))
	if got := KindOf(err); got != KindStorageUnavailable {
		t.Fatalf("expected %s, got %s", KindStorageUnavailable, got)
	}
	if Message(err) != "storage unavailable" {
		t.Fatalf("unexpected message %q", Message(err))
	}
}

func TestValidationMessage(t *testing.T) {
	err := fmt.Errorf("validation failed: %w", Validation("amount must be at least %d", 20000))
	if !Is(err, KindValidation) {
		t.Fatalf("expected validation kind")
	}
	if Message(err) != "amount must be at least 20000" {
		t.Fatalf("unexpected message %q", Message(err))
	}
}
