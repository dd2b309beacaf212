package config

import (
	"time"
)

// Config wraps a decoded YAML or JSON document for typed value extraction.
// Accessors return the default value when the key is missing or holds a
// value of another type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map. A nil map gives an empty Config.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string at key.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean at key.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer at key. Floats convert only when whole.
func (c Config) Int(key string, defaultVal int) int {
	switch v := c.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return defaultVal
}

// Duration returns the duration at key.
//
// Strings are parsed with time.ParseDuration ("300ms", "1s"). Numbers are
// milliseconds, matching how debounce delays are usually written.
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	d, err := c.duration(key)
	if err != nil || d == nil {
		return defaultVal
	}
	return *d
}

// duration parses the value at key. A missing key gives (nil, nil).
func (c Config) duration(key string) (*time.Duration, error) {
	v, ok := c.data[key]
	if !ok || v == nil {
		return nil, nil
	}

	var d time.Duration
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return nil, err
		}
		d = parsed
	case int:
		d = time.Duration(val) * time.Millisecond
	case int64:
		d = time.Duration(val) * time.Millisecond
	case float64:
		d = time.Duration(val * float64(time.Millisecond))
	case time.Duration:
		d = val
	default:
		return nil, errNotDuration
	}
	return &d, nil
}

// StringSlice returns the string list at key. A list holding anything
// other than strings gives defaultVal.
func (c Config) StringSlice(key string, defaultVal []string) []string {
	switch v := c.data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			out = append(out, s)
		}
		return out
	}
	return defaultVal
}

// Section returns the nested document at key, or an empty Config.
func (c Config) Section(key string) Config {
	if m, ok := asMap(c.data[key]); ok {
		return New(m)
	}
	return New(nil)
}

// List returns the nested documents of the list at key. Entries that are
// not documents are skipped.
func (c Config) List(key string) []Config {
	items, ok := c.data[key].([]any)
	if !ok {
		return nil
	}

	out := make([]Config, 0, len(items))
	for _, item := range items {
		if m, ok := asMap(item); ok {
			out = append(out, New(m))
		}
	}
	return out
}

// Has reports whether key exists.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map. Do not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Config:
		return m.data, true
	}
	return nil, false
}
