package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpIncludesPgconnDetails(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", ConstraintName: "idx_price_tiers_product_min_quantity", TableName: "price_tiers", ColumnName: "min_quantity"}
	err := Wrap(CodeConflict, fmt.Errorf("insert tier: %w", cause), "replace price tiers")

	d := Dump(err)
	if d.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGTable != "price_tiers" || d.PGColumn != "min_quantity" {
		t.Fatalf("unexpected pg fields %+v", d)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected error chain, got %v", d.Chain)
	}
}

func TestDumpIncludesPQDetails(t *testing.T) {
	cause := &pq.Error{Code: "23502", Table: "price_tiers", Column: "unit_price", Message: "null value"}

	d := Dump(fmt.Errorf("insert tier: %w", cause))
	if d.PGCode != "23502" || d.PGTable != "price_tiers" || d.PGColumn != "unit_price" {
		t.Fatalf("unexpected pq fields %+v", d)
	}
	if d.PGMessage != "null value" {
		t.Fatalf("expected pq message, got %q", d.PGMessage)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("pgconn unique violation not detected")
	}
	if !IsUniqueViolation(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23505"})) {
		t.Fatal("pq unique violation not detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation reported as unique")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil must not be a unique violation")
	}
}

func TestDumpNil(t *testing.T) {
	if d := Dump(nil); d.TopMessage != "" || d.Chain != nil {
		t.Fatalf("expected empty dump, got %+v", d)
	}
}
