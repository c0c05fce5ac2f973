package students

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNotNumeric = errors.New("value is not numeric")

// Decimal is an optional decimal measure (kilos, centimeters).
// The zero value is absent; absent values never take part in computations.
type Decimal struct {
	value float64
	valid bool
}

func NewDecimal(v float64) Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Decimal{}
	}
	return Decimal{value: v, valid: true}
}

// ParseDecimal validates form input. Both "70.5" and "70,5" are accepted.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decimal{}, ErrNotNumeric
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Decimal{}, ErrNotNumeric
	}
	return Decimal{value: v, valid: true}, nil
}

func (d Decimal) Get() (float64, bool) {
	return d.value, d.valid
}

func (d Decimal) IsSet() bool {
	return d.valid
}

// String renders the value the shortest way, e.g. 70 or 70.5; absent renders empty.
func (d Decimal) String() string {
	if !d.valid {
		return ""
	}
	return strconv.FormatFloat(d.value, 'f', -1, 64)
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.value)
}

// UnmarshalJSON never fails on bad data: non-numeric input decodes to an absent value.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	*d = Decimal{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if parsed, err := ParseDecimal(s); err == nil {
			*d = parsed
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*d = NewDecimal(v)
	return nil
}
