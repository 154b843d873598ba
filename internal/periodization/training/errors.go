package training

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failure")

	ErrCompletedEntryImmutable = fmt.Errorf("completed entry is immutable: %w", ErrInvalidState)
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidState)
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// StatusCode maps an engine error to the HTTP status a handler replies with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTPError replies with the status for err. Taxonomy errors carry
// their message to the client, anything else is logged and hidden.
func WriteHTTPError(w http.ResponseWriter, err error, action string) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", action, err)
		http.Error(w, "failed to "+action, status)
		return
	}
	log.Debugf("%s: %s", action, err)
	http.Error(w, err.Error(), status)
}
