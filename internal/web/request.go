package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// maxFormBody bounds non-upload request bodies.
const maxFormBody = 1 << 20

// readFields returns the request's fields from either a form body or a
// flat JSON object. JSON scalars are converted to their text form, so
// handlers parse both encodings the same way. An empty JSON body yields
// no fields.
func readFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)

	if isFormEncoded(r) {
		if err := r.ParseMultipartForm(maxFormBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("invalid request: %w", err)
		}
		fields := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		return fields, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			fields[k] = val
		case bool:
			fields[k] = strconv.FormatBool(val)
		case json.Number:
			fields[k] = val.String()
		case nil:
			fields[k] = ""
		default:
			return nil, fmt.Errorf("invalid request: field %q must be a scalar", k)
		}
	}
	return fields, nil
}

// boolField parses a required boolean field.
func boolField(fields map[string]string, name string) (bool, error) {
	v, ok := fields[name]
	if !ok {
		return false, fmt.Errorf("invalid request: missing %q", name)
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid request: %q must be true or false", name)
	}
	return b, nil
}

// stringField returns a required field.
func stringField(fields map[string]string, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("invalid request: missing %q", name)
	}
	return v, nil
}
