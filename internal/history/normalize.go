package history

import (
	"encoding/json"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

var roles = map[string]string{
	"human": RoleUser,
	"ai":    RoleAssistant,
}

// Normalize maps stored messages to chat roles, keeping order. Rows whose
// message is not an object, or whose type is neither "human" nor "ai", are
// skipped.
func Normalize(records []Record) []Message {
	out := make([]Message, 0, len(records))
	for _, rec := range records {
		fields, ok := decodeObject(rec.Message)
		if !ok {
			continue
		}
		var typ string
		if err := json.Unmarshal(fields["type"], &typ); err != nil {
			continue
		}
		role, ok := roles[typ]
		if !ok {
			continue
		}
		out = append(out, Message{Role: role, Content: contentText(fields["content"])})
	}
	return out
}

// decodeObject accepts an object, or a JSON string that itself holds an
// object (text columns written by older engine versions).
func decodeObject(raw []byte) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil && fields != nil {
		return fields, true
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(inner), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func contentText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
