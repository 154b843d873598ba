package pkg

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// IntQueryParam reads a required integer query parameter.
func IntQueryParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s missing", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s NaN", name)
	}
	return v, nil
}

// IntPathVar parses an already extracted path variable.
func IntPathVar(vars map[string]string, name string) (int, error) {
	raw := vars[name]
	if raw == "" {
		return 0, fmt.Errorf("%s empty", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s NaN", name)
	}
	return v, nil
}

// IsJSONRequest reports whether the request body is declared as JSON.
// Media type parameters like charset are accepted.
func IsJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == ContentType.JSON
}
