package components

import (
	"encoding/json"
	"log"
)

// Vals renders a one-entry object for hx-vals and hx-headers attributes
func Vals(key, value string) string {
	b, err := json.Marshal(map[string]string{key: value})
	if err != nil {
		log.Printf("[ERROR] Failed to encode htmx attribute value for %q: %v", key, err)
		return "{}"
	}
	return string(b)
}

// JSON encodes v for an htmx attribute, falling back to an empty object
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[ERROR] Failed to encode htmx attribute of type %T: %v", v, err)
		return "{}"
	}
	return string(b)
}
