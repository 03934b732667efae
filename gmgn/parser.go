// =================================
// File: gmgn/parser.go
// =================================
package gmgn

import "encoding/json"

// ParseRankResponse maps a raw rank payload into Token records.
//
// The token list normally lives at data.rank; older responses carried a bare
// data array, which is kept as a fallback path. Missing container keys yield
// an empty slice, not an error. A ParsingError is returned only when the
// payload is not a JSON object at all.
func ParseRankResponse(raw []byte) ([]Token, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ParsingError{Reason: "payload is not valid JSON: " + err.Error()}
	}

	object, ok := payload.(map[string]any)
	if !ok {
		return nil, &ParsingError{Reason: "payload is not a JSON object"}
	}

	entries := rankEntries(object)

	// The API wraps errors in a code/msg envelope with no token list.
	if code := asInt64(object["code"]); code != 0 && len(entries) == 0 {
		msg := asString(object["msg"])
		if msg == "" {
			msg = "upstream error envelope"
		}
		return nil, &APIError{StatusCode: int(code), Message: msg}
	}

	tokens := make([]Token, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		tokens = append(tokens, tokenFromEntry(m))
	}
	return tokens, nil
}

func rankEntries(object map[string]any) []any {
	switch data := object["data"].(type) {
	case map[string]any:
		if rank, ok := data["rank"].([]any); ok {
			return rank
		}
		return nil
	case []any:
		return data
	default:
		return nil
	}
}
