package sqlutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNullUUIDRoundTrip(t *testing.T) {
	if got := FromNullUUID(ToNullUUID(nil)); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	id := uuid.New()
	got := FromNullUUID(ToNullUUID(&id))
	if got == nil || *got != id {
		t.Fatalf("expected %s, got %v", id, got)
	}
}

func TestNullDecimal(t *testing.T) {
	price := decimal.NewFromInt(300)
	nd := ToNullDecimal(&price)
	if !nd.Valid || !nd.Decimal.Equal(price) {
		t.Fatalf("unexpected null decimal %+v", nd)
	}
	if FromNullDecimal(decimal.NullDecimal{}) != nil {
		t.Fatalf("expected nil for invalid decimal")
	}
}
