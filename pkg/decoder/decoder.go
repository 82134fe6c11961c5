package decoder

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// DecodeStrict decodes a single JSON document from r into a T, rejecting
// fields T doesn't declare.
func DecodeStrict[T any](r io.Reader) (T, error) {
	var out T

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&out); err != nil {
		return out, errors.Wrap(err, "failed to decode")
	}

	if dec.More() {
		return out, errors.New("failed to decode: trailing data after document")
	}

	return out, nil
}
