package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Features is an ordered list of product features. In JSON it may be given
// either as an array of strings or as one comma-delimited string.
type Features []string

// UnmarshalJSON accepts `["a","b"]`, `"a, b"` and null.
func (f *Features) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = ParseFeatures(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("features must be a string or an array of strings: %w", err)
	}
	*f = NormalizeFeatures(list)
	return nil
}

// String joins the features the way they appear in generated copy.
func (f Features) String() string {
	return strings.Join(f, ", ")
}

// ParseFeatures splits a comma-delimited list, trimming each entry and
// dropping empty ones.
func ParseFeatures(s string) Features {
	return NormalizeFeatures(strings.Split(s, ","))
}

// NormalizeFeatures applies the comma split and trim rules to every entry of
// list, so `["a, b", " c "]` becomes `["a", "b", "c"]`.
func NormalizeFeatures(list []string) Features {
	out := make(Features, 0, len(list))
	for _, item := range list {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
