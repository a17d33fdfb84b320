package output

import "encoding/json"

// ToJSON renders v as indented JSON. Control characters in strings are
// escaped by the encoder, so the result is terminal safe.
func ToJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
