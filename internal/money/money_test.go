package money

import (
	"encoding/json"
	"testing"
)

func TestAmountUnmarshal_StringAndNumber(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}

	data := []byte(`{"a": "100.25", "b": 50.5, "c": null}`)
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.A.String() != "100.25" {
		t.Errorf("expected 100.25, got %s", payload.A.String())
	}
	if payload.B.String() != "50.50" {
		t.Errorf("expected 50.50, got %s", payload.B.String())
	}
	if !payload.C.IsZero() {
		t.Errorf("expected zero for null, got %s", payload.C.String())
	}
}

func TestAmountUnmarshal_Invalid(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`"not-a-number"`), &a); err == nil {
		t.Fatal("expected error for invalid amount")
	}
}

func TestAmountMarshal_DecimalString(t *testing.T) {
	out, err := json.Marshal(MustNew("1234.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `"1234.50"` {
		t.Errorf("expected \"1234.50\", got %s", out)
	}
}

func TestSum(t *testing.T) {
	amounts := []Amount{MustNew("100.00"), MustNew("50.25"), MustNew("12.75")}
	if got := Sum(amounts); got.String() != "163.00" {
		t.Errorf("expected 163.00, got %s", got.String())
	}

	if got := Sum(nil); !got.IsZero() {
		t.Errorf("expected zero for empty sum, got %s", got.String())
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.56", "$1,234.56"},
		{"999", "$999.00"},
		{"1000000.5", "$1,000,000.50"},
		{"-42.10", "-$42.10"},
	}

	for _, tt := range tests {
		if got := Format(MustNew(tt.in)); got != tt.want {
			t.Errorf("Format(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "30m"},
		{2, "2h"},
		{1.25, "1h 15m"},
	}

	for _, tt := range tests {
		if got := FormatHours(tt.in); got != tt.want {
			t.Errorf("FormatHours(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
