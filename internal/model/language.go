package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LanguageBytes is the number of bytes written in one language.
type LanguageBytes struct {
	Language string
	Bytes    int64
}

// LanguageStats is a per-repository language breakdown in the order the
// API returned it. It is a slice rather than a map so that ties keep a
// defined order.
type LanguageStats []LanguageBytes

// Primary returns the language with the most bytes. Ties go to the entry
// that appears first. The second result is false for empty stats.
func (s LanguageStats) Primary() (string, bool) {
	if len(s) == 0 {
		return "", false
	}

	best := s[0]
	for _, lb := range s[1:] {
		if lb.Bytes > best.Bytes {
			best = lb
		}
	}

	return best.Language, true
}

// UnmarshalJSON decodes a {"Language": bytes} object keeping key order.
func (s *LanguageStats) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("language stats: expected object, got %v", tok)
	}

	stats := make(LanguageStats, 0)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("language stats: unexpected key %v", keyTok)
		}

		var n int64
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("language stats: value for %q: %w", key, err)
		}

		stats = append(stats, LanguageBytes{Language: key, Bytes: n})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = stats

	return nil
}

// MarshalJSON encodes the stats as an object in slice order.
func (s LanguageStats) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, lb := range s {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(lb.Language)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		_, _ = fmt.Fprintf(&buf, ":%d", lb.Bytes)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
