package handler

import (
	"net/http"
	"strconv"
)

// queryInt parses an optional integer query parameter, returning the
// fallback when absent
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewInvalidRequestError(name + " must be an integer")
	}
	return value, nil
}
