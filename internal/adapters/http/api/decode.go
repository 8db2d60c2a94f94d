package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strconv"

	"github.com/okian/habitat/internal/domain/habitability"
)

// maxBodyBytes bounds request bodies; a full batch stays well below it.
const maxBodyBytes = 1 << 20

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrBadRequest, err)
	}
	return body, nil
}

// decodeParameters decodes a ParameterSet object. Every field must be
// present and non-null, and unknown keys are rejected.
func decodeParameters(raw []byte) (habitability.ParameterSet, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return habitability.ParameterSet{}, fmt.Errorf("%w: parameters must be a JSON object", ErrBadRequest)
	}
	for _, name := range habitability.FieldNames() {
		v, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return habitability.ParameterSet{}, fmt.Errorf("%w: missing field %q", ErrBadRequest, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		if _, ok := habitability.KindOf(name); !ok {
			return habitability.ParameterSet{}, fmt.Errorf("%w: unknown field %q", ErrBadRequest, name)
		}
	}

	var p habitability.ParameterSet
	if err := json.Unmarshal(raw, &p); err != nil {
		return habitability.ParameterSet{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return p, nil
}

func readParameters(w http.ResponseWriter, r *http.Request) (habitability.ParameterSet, error) {
	body, err := readBody(w, r)
	if err != nil {
		return habitability.ParameterSet{}, err
	}
	return decodeParameters(body)
}

// boolQuery parses an optional boolean query parameter; absent means false.
func boolQuery(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrBadRequest, key)
	}
	return b, nil
}
