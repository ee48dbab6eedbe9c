package sanitizer

import (
	"net/http"
	"net/url"
	"strings"
)

// Redacted replaces the value of every sensitive key.
const Redacted = "[REDACTED]"

// DefaultSensitiveFields are matched as case-insensitive substrings of keys.
var DefaultSensitiveFields = []string{
	"password",
	"token",
	"secret",
	"authorization",
	"credit_card",
}

// Sanitizer redacts values under sensitive keys in nested key-value data.
// It is immutable after construction and safe for concurrent use.
type Sanitizer struct {
	fields []string
}

// New returns a Sanitizer matching [DefaultSensitiveFields] plus extra.
// Blank entries in extra are ignored.
func New(extra ...string) *Sanitizer {
	fields := make([]string, 0, len(DefaultSensitiveFields)+len(extra))
	fields = append(fields, DefaultSensitiveFields...)
	for _, f := range extra {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			fields = append(fields, f)
		}
	}
	return &Sanitizer{fields: fields}
}

// IsSensitive reports whether values under key must be redacted.
func (s *Sanitizer) IsSensitive(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, field := range s.fields {
		if strings.Contains(lowerKey, field) {
			return true
		}
	}
	return false
}

// Sanitize returns a deep copy of v with sensitive values redacted.
//
// Maps keyed by string (including [http.Header] and [url.Values]) and slices
// are walked recursively. Header and form values holding a single element
// are flattened to that element. Any other value is returned as is.
func (s *Sanitizer) Sanitize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return s.Map(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.Sanitize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.Map(item)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = s.redact(k, item)
		}
		return out
	case http.Header:
		return s.Header(val)
	case url.Values:
		return s.Values(val)
	case map[string][]string:
		return s.multi(val)
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return v
	}
}

// Map returns a sanitized deep copy of m. A nil map yields nil.
func (s *Sanitizer) Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = s.redact(k, v)
	}
	return out
}

// Header returns a sanitized copy of h suitable for structured logging.
func (s *Sanitizer) Header(h http.Header) map[string]any {
	return s.multi(h)
}

// Values returns a sanitized copy of query or form values.
func (s *Sanitizer) Values(v url.Values) map[string]any {
	return s.multi(v)
}

// URL returns the request URI uri with the values of sensitive query
// parameters redacted. A URI without sensitive parameters is returned
// unchanged. An unparsable query is rebuilt from the pairs that did parse.
func (s *Sanitizer) URL(uri string) string {
	path, rawQuery, found := strings.Cut(uri, "?")
	if !found || rawQuery == "" {
		return uri
	}

	query, err := url.ParseQuery(rawQuery)
	redact := err != nil
	for k := range query {
		if s.IsSensitive(k) {
			query[k] = []string{Redacted}
			redact = true
		}
	}
	if !redact {
		return uri
	}

	encoded := strings.ReplaceAll(query.Encode(), url.QueryEscape(Redacted), Redacted)
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func (s *Sanitizer) multi(m map[string][]string) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, values := range m {
		if s.IsSensitive(k) {
			out[k] = Redacted
			continue
		}
		if len(values) == 1 {
			out[k] = values[0]
			continue
		}
		out[k] = s.Sanitize(values)
	}
	return out
}

func (s *Sanitizer) redact(key string, v any) any {
	if s.IsSensitive(key) {
		return Redacted
	}
	return s.Sanitize(v)
}
