package money

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "integer", input: "500", want: 50000},
		{name: "two decimals", input: "500.25", want: 50025},
		{name: "one decimal", input: "500.5", want: 50050},
		{name: "leading dot", input: ".75", want: 75},
		{name: "trailing dot", input: "12.", want: 1200},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-3.50", want: -350},
		{name: "explicit plus", input: "+3.50", want: 350},
		{name: "rounds half up", input: "1.005", want: 101},
		{name: "rounds down", input: "1.004", want: 100},
		{name: "negative rounds away from zero", input: "-1.005", want: -101},
		{name: "extra digits truncate after rounding", input: "2.999999", want: 300},
		{name: "whitespace", input: " 42.10 ", want: 4210},
		{name: "exponent notation", input: "1e2", want: 10000},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "mixed garbage", input: "12.3a", wantErr: true},
		{name: "lone dot", input: ".", wantErr: true},
		{name: "lone sign", input: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d cents, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		amount Amount
		want   string
	}{
		{15000, "150.00"},
		{50, "0.50"},
		{5, "0.05"},
		{0, "0.00"},
		{-350, "-3.50"},
		{100000, "1000.00"},
	}

	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Amount(%d).String() = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "number", input: `500.5`, want: 50050},
		{name: "integer number", input: `500`, want: 50000},
		{name: "string", input: `"500.00"`, want: 50000},
		{name: "string integer", input: `"500"`, want: 50000},
		{name: "null", input: `null`, want: 0},
		{name: "garbage string", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) = %v, want error", tt.input, a)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if a != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, a, tt.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Amount(15000))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != `"150.00"` {
		t.Errorf("Marshal = %s, want \"150.00\"", out)
	}
}

func TestArithmetic(t *testing.T) {
	a, b := Amount(100000), Amount(40000)

	if got := a.Sub(b); got != 60000 {
		t.Errorf("1000.00 - 400.00 = %s, want 600.00", got)
	}
	if got := a.Add(b); got != 140000 {
		t.Errorf("1000.00 + 400.00 = %s, want 1400.00", got)
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering wrong")
	}
	if !a.IsPositive() || Amount(0).IsPositive() || Amount(-1).IsPositive() {
		t.Error("IsPositive wrong")
	}
	if !Amount(0).IsZero() || a.IsZero() {
		t.Error("IsZero wrong")
	}
}

func TestFromFloat(t *testing.T) {
	if got := FromFloat(12.34); got != 1234 {
		t.Errorf("FromFloat(12.34) = %d, want 1234", got)
	}
	if got := FromFloat(0.1 + 0.2); got != 30 {
		t.Errorf("FromFloat(0.1+0.2) = %d, want 30", got)
	}
	if got := FromFloat(-12.34); got != -1234 {
		t.Errorf("FromFloat(-12.34) = %d, want -1234", got)
	}
}
