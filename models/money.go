package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents. Prices arrive from clients and storage as
// numbers, numeric strings or nothing at all; ParseMoney is the single
// place where anything unparsable collapses to zero.
type Money int64

func MoneyFromFloat(f float64) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Money(math.Round(f * 100))
}

// ParseMoney coerces an arbitrary decoded value to Money, defaulting to 0.
func ParseMoney(v any) Money {
	switch val := v.(type) {
	case nil:
		return 0
	case Money:
		return val
	case float64:
		return MoneyFromFloat(val)
	case float32:
		return MoneyFromFloat(float64(val))
	case int:
		return Money(val) * 100
	case int64:
		return Money(val) * 100
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return MoneyFromFloat(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return MoneyFromFloat(f)
	default:
		return 0
	}
}

func (m Money) Float64() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	sign := ""
	cents := int64(m)
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	*m = ParseMoney(s)
	return nil
}
