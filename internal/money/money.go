// Package money normalizes monetary values exchanged with the print-shop API.
// The backend transports amounts as either JSON numbers or numeric strings
// ("500", 500.5, "500.00"), so every consumer parses through Amount before
// doing arithmetic or comparisons.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a fixed-point monetary value in cents.
type Amount int64

// Zero is the additive identity, useful as an explicit default.
const Zero Amount = 0

// Parse converts a decimal string into an Amount. Values with more than two
// fractional digits are rounded half away from zero.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	// Exponent notation falls back to float parsing
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if neg {
			f = -f
		}
		return FromFloat(f), nil
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	cents := whole * 100
	if fracPart != "" {
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid amount %q", s)
			}
		}
		// Keep three digits so the third can round the second
		padded := fracPart + "000"
		frac, _ := strconv.ParseInt(padded[:3], 10, 64)
		cents += frac/10 + (frac%10)/5
	}

	if neg {
		cents = -cents
	}
	return Amount(cents), nil
}

// FromFloat converts a float to an Amount, rounding to the nearest cent.
func FromFloat(f float64) Amount {
	return Amount(math.Round(f * 100))
}

func (a Amount) Float64() float64 { return float64(a) / 100 }

// String renders the amount with two decimal places, e.g. "150.00".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (a Amount) Add(b Amount) Amount { return a + b }
func (a Amount) Sub(b Amount) Amount { return a - b }

// Cmp returns -1, 0, or 1 comparing a against b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Amount) IsPositive() bool { return a > 0 }
func (a Amount) IsZero() bool     { return a == 0 }

// UnmarshalJSON accepts numbers, numeric strings, and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = unquoted
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON emits the canonical two-decimal string form.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
