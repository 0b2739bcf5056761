package job

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawListing is one decoded listing object from a provider response
type RawListing map[string]any

// String returns the value under key as text. Numbers are formatted, anything
// else (including a missing key) yields "".
func (r RawListing) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// Float returns the value under key as a number. Numeric strings are parsed,
// unparseable or missing values yield 0.
func (r RawListing) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Object returns the nested object under key, or nil
func (r RawListing) Object(key string) RawListing {
	switch v := r[key].(type) {
	case map[string]any:
		return RawListing(v)
	case RawListing:
		return v
	default:
		return nil
	}
}
