package sqlutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestPostgresErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})
	fk := fmt.Errorf("upsert bid: %w", &pq.Error{Code: "23503"})
	other := errors.New("connection refused")

	if !IsUniqueViolation(unique) || IsUniqueViolation(fk) || IsUniqueViolation(other) {
		t.Fatal("IsUniqueViolation must match only 23505")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) || IsForeignKeyViolation(other) {
		t.Fatal("IsForeignKeyViolation must match only 23503")
	}
}
