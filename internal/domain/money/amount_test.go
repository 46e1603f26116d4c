package money

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewRoundsToPrecision(t *testing.T) {
	amount, err := New(10.555, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if amount.String() != "10.56" {
		t.Fatalf("expected 10.56, got %s", amount.String())
	}
}

func TestNewNegativePrecision(t *testing.T) {
	_, err := New(10, -1)
	if !errors.Is(err, ErrInvalidPrecision) {
		t.Fatalf("expected ErrInvalidPrecision, got %v", err)
	}
}

func TestNewZeroPrecision(t *testing.T) {
	amount, err := New(10.5, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if amount.String() != "11" {
		t.Fatalf("expected 11, got %s", amount.String())
	}
}

func TestAddUsesMaxPrecision(t *testing.T) {
	a, _ := New(1.005, 3)
	b, _ := New(2.1, 2)

	sum := a.Add(b)
	if sum.Precision() != 3 {
		t.Fatalf("expected precision 3, got %d", sum.Precision())
	}
	if sum.String() != "3.105" {
		t.Fatalf("expected 3.105, got %s", sum.String())
	}
}

func TestSub(t *testing.T) {
	a := FromFloat(100)
	b := FromFloat(33.34)

	got := a.Sub(b)
	if !got.EqualFloat(66.66) {
		t.Fatalf("expected 66.66, got %s", got.String())
	}
}

func TestEqualIgnoresRepresentation(t *testing.T) {
	a, _ := New(10.5, 2)
	b, _ := New(10.50, 4)
	if !a.Equal(b) {
		t.Fatalf("expected %s == %s", a.String(), b.String())
	}
}

func TestCentsRoundTrip(t *testing.T) {
	amount := FromCents(3334)
	if amount.Cents() != 3334 {
		t.Fatalf("expected 3334 cents, got %d", amount.Cents())
	}
	if amount.String() != "33.34" {
		t.Fatalf("expected 33.34, got %s", amount.String())
	}
}

func TestMulFloat(t *testing.T) {
	amount := FromFloat(15)
	got := amount.MulFloat(1.5)
	if !got.EqualFloat(22.5) {
		t.Fatalf("expected 22.50, got %s", got.String())
	}
}

func TestZeroValueBehavesAsZero(t *testing.T) {
	var amount Amount
	if !amount.IsZero() {
		t.Fatalf("expected zero value to be zero")
	}
	if amount.Cents() != 0 {
		t.Fatalf("expected 0 cents, got %d", amount.Cents())
	}
	sum := amount.Add(FromFloat(1.25))
	if !sum.EqualFloat(1.25) {
		t.Fatalf("expected 1.25, got %s", sum.String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(FromFloat(12.3))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(data) != "12.30" {
		t.Fatalf("expected plain number 12.30, got %s", string(data))
	}

	var decoded Amount
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !decoded.EqualFloat(12.3) {
		t.Fatalf("expected 12.30, got %s", decoded.String())
	}
}

func TestScanFromString(t *testing.T) {
	var amount Amount
	if err := amount.Scan("45.67"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if amount.Cents() != 4567 {
		t.Fatalf("expected 4567 cents, got %d", amount.Cents())
	}
}
