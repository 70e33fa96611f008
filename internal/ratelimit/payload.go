// Package ratelimit interprets GitHub rate-limit payloads and selects the
// bucket whose reset matters most.
package ratelimit

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
)

// Payload is a parsed rate-limit document. Object keys keep the order in
// which they appear in the source bytes.
type Payload struct {
	doc gjson.Result
}

// Resources is the object-valued "resources" field of a payload.
type Resources struct {
	doc gjson.Result
}

// ParsePayload parses data as a JSON object. origin names where the bytes
// came from and is used in diagnostics.
func ParsePayload(data []byte, origin string) (Payload, error) {
	if !gjson.ValidBytes(data) {
		cause := syntaxError(data)
		return Payload{}, apperrors.WrapInvalidInput(cause, fmt.Sprintf("Failed to parse JSON from %s: %v", origin, cause))
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Payload{}, apperrors.NewInvalidInputError("Input JSON must be an object")
	}
	return Payload{doc: doc}, nil
}

// Resources returns the payload's "resources" object.
func (p Payload) Resources() (Resources, error) {
	res := lastValue(p.doc, "resources")
	if !res.IsObject() {
		return Resources{}, apperrors.NewValidationError("missing object field: resources")
	}
	return Resources{doc: res}, nil
}

// Raw returns the payload as it was received.
func (p Payload) Raw() string {
	return p.doc.Raw
}

type member struct {
	key   string
	value gjson.Result
}

// members lists the fields of obj in document order. A repeated key keeps
// the position of its first occurrence and the value of its last.
func members(obj gjson.Result) []member {
	var out []member
	index := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if i, seen := index[name]; seen {
			out[i].value = value
			return true
		}
		index[name] = len(out)
		out = append(out, member{key: name, value: value})
		return true
	})
	return out
}

// lastValue returns the last value stored under field in obj.
func lastValue(obj gjson.Result, field string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(key, value gjson.Result) bool {
		if key.String() == field {
			found = value
		}
		return true
	})
	return found
}

// syntaxError produces a decoder diagnostic for bytes gjson rejected.
func syntaxError(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	return fmt.Errorf("invalid JSON")
}
