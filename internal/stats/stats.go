// Package stats fetches the team's season summary document and exposes its
// entries as optional values.
package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Missing is rendered in place of any absent stat value or rank
const Missing = "N/A"

// Stat is one entry of the season summary. Value and ContextValue are nil when
// the upstream record omits them or sends null.
type Stat struct {
	Name         string
	Value        *string
	ContextValue *string
}

// Snapshot maps a stat name to its entry
type Snapshot map[string]Stat

type record struct {
	Stat         string          `json:"stat"`
	Value        json.RawMessage `json:"value"`
	ContextValue json.RawMessage `json:"context_value"`
}

// Parse decodes a JSON array of {stat, value, context_value} records.
// Later records win when a stat name repeats.
func Parse(data []byte) (Snapshot, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing season summary: %w", err)
	}

	snap := make(Snapshot, len(records))
	for _, r := range records {
		if r.Stat == "" {
			continue
		}
		snap[r.Stat] = Stat{
			Name:         r.Stat,
			Value:        scalar(r.Value),
			ContextValue: scalar(r.ContextValue),
		}
	}
	return snap, nil
}

// scalar renders a raw JSON value as display text. Strings are unquoted,
// numbers keep their literal form, null and absent values are nil.
func scalar(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return &s
	}

	s = strings.TrimSpace(string(raw))
	return &s
}

// Value returns the stat's value or fallback when it is missing
func (s Snapshot) Value(name, fallback string) string {
	if st, ok := s[name]; ok && st.Value != nil {
		return *st.Value
	}
	return fallback
}

// Rank returns the stat's contextual rank or fallback when it is missing
func (s Snapshot) Rank(name, fallback string) string {
	if st, ok := s[name]; ok && st.ContextValue != nil {
		return *st.ContextValue
	}
	return fallback
}
