package students

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNotPositive = errors.New("value must be a positive whole number")

// Count is an optional positive whole number (age in years, duration in minutes).
// The zero value is absent.
type Count struct {
	value int
	valid bool
}

// NewCount keeps only positive values; anything else is absent.
func NewCount(v int) Count {
	if v <= 0 {
		return Count{}
	}
	return Count{value: v, valid: true}
}

// ParseCount validates form input; empty input means absent.
func ParseCount(s string) (Count, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Count{}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Count{}, ErrNotNumeric
	}
	if v <= 0 {
		return Count{}, ErrNotPositive
	}
	return Count{value: v, valid: true}, nil
}

func (c Count) Get() (int, bool) {
	return c.value, c.valid
}

func (c Count) IsSet() bool {
	return c.valid
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON accepts numbers and numeric strings. Like Decimal it never fails:
// malformed, fractional or non-positive input decodes to an absent value.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if parsed, err := ParseCount(s); err == nil {
			*c = parsed
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if v != math.Trunc(v) || v > math.MaxInt32 {
		return nil
	}
	*c = NewCount(int(v))
	return nil
}
