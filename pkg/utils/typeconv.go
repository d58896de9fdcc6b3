package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ConvertToInt coerces a dynamically-typed API value to an int. The Spotify
// payloads are not strict about numeric fields, so everything plausible is
// accepted: Go numeric types, json.Number, numeric strings and byte slices.
func ConvertToInt(val interface{}) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, err
		}
		return int(n), nil
	case string:
		return strconv.Atoi(v)
	case []byte:
		return strconv.Atoi(string(v))
	default:
		return 0, fmt.Errorf("cannot convert %T to int", val)
	}
}

// IntOrNil coerces val to an int pointer, returning nil when the value is
// absent or not coercible. Malformed upstream values degrade to null instead
// of failing the record.
func IntOrNil(val interface{}) *int {
	if val == nil {
		return nil
	}
	n, err := ConvertToInt(val)
	if err != nil {
		return nil
	}
	return &n
}

// IntOrZero coerces val to an int, defaulting to 0. Used for image widths,
// where a missing width simply ranks last.
func IntOrZero(val interface{}) int {
	if val == nil {
		return 0
	}
	n, err := ConvertToInt(val)
	if err != nil {
		return 0
	}
	return n
}
