// ABOUTME: Redaction of credential fields before request bodies are logged
// ABOUTME: Keeps passwords out of the diagnostic log sink

package client

import "encoding/json"

const redactedPlaceholder = "[REDACTED]"

// credentialFields are JSON keys whose values must never reach a log sink.
var credentialFields = map[string]bool{
	"password":              true,
	"current_password":      true,
	"new_password":          true,
	"password_confirmation": true,
}

// redact returns a log-safe copy of a request body. The body is round-tripped
// through JSON so redaction sees exactly what goes on the wire; values that
// cannot be serialized are dropped entirely rather than logged raw.
func redact(body any) any {
	if body == nil {
		return nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return redactedPlaceholder
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return redactedPlaceholder
	}
	return redactValue(decoded)
}

func redactValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if credentialFields[k] {
				val[k] = redactedPlaceholder
			} else {
				val[k] = redactValue(item)
			}
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = redactValue(item)
		}
		return val
	default:
		return v
	}
}
