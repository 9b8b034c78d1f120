package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TriggerKind tags the representation a trigger was recorded in.
type TriggerKind int

// Trigger representations
const (
	TriggerNone TriggerKind = iota
	TriggerRaw
	TriggerStructured
)

// TriggerValue holds the triggers recorded for an emotion event. Clients send
// either a single free-text string or a list of strings; both are kept as
// recorded and reduced to one grouping key by Key.
type TriggerValue struct {
	kind  TriggerKind
	raw   string
	items []string
}

// RawTrigger creates a trigger recorded as a single string.
func RawTrigger(s string) TriggerValue {
	return TriggerValue{kind: TriggerRaw, raw: s}
}

// StructuredTrigger creates a trigger recorded as a list of strings.
func StructuredTrigger(items ...string) TriggerValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return TriggerValue{kind: TriggerStructured, items: cp}
}

// Kind reports which representation the trigger was recorded in.
func (t TriggerValue) Kind() TriggerKind {
	return t.kind
}

// Raw returns the string form of a raw trigger.
func (t TriggerValue) Raw() string {
	return t.raw
}

// Items returns a copy of the elements of a structured trigger.
func (t TriggerValue) Items() []string {
	if t.items == nil {
		return nil
	}
	cp := make([]string, len(t.items))
	copy(cp, t.items)
	return cp
}

// Key returns the canonical grouping key. Raw triggers are trimmed;
// structured triggers join their trimmed, non-empty items with ", " in the
// order they were recorded. An empty key means no trigger was recorded.
func (t TriggerValue) Key() string {
	switch t.kind {
	case TriggerRaw:
		return strings.TrimSpace(t.raw)
	case TriggerStructured:
		parts := make([]string, 0, len(t.items))
		for _, item := range t.items {
			if s := strings.TrimSpace(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// IsZero reports whether no trigger was recorded.
func (t TriggerValue) IsZero() bool {
	return t.Key() == ""
}

// MarshalJSON writes the trigger back in the representation it was recorded in.
func (t TriggerValue) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case TriggerRaw:
		return json.Marshal(t.raw)
	case TriggerStructured:
		if t.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.items)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string, a list, or null. Any other value, and any
// non-string list element, is kept as its compact JSON text instead of
// failing the decode.
func (t *TriggerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = TriggerValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*t = RawTrigger(s)
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(trimmed, &list); err == nil {
		items := make([]string, 0, len(list))
		for _, elem := range list {
			items = append(items, coerceTriggerElement(elem))
		}
		*t = StructuredTrigger(items...)
		return nil
	}

	*t = RawTrigger(compactJSON(trimmed))
	return nil
}

func coerceTriggerElement(elem json.RawMessage) string {
	var s string
	if err := json.Unmarshal(elem, &s); err == nil {
		return s
	}
	return compactJSON(elem)
}

func compactJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return string(data)
	}
	return buf.String()
}
