package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/telesync/align"
	"github.com/fulldump/telesync/api/apidatasetv1"
	"github.com/fulldump/telesync/api/apitoolsv1"
	"github.com/fulldump/telesync/database"
	"github.com/fulldump/telesync/events"
	"github.com/fulldump/telesync/histogram"
	"github.com/fulldump/telesync/service"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening || status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: %s", ErrUnavailable, status))
				return
			}
			next(ctx)
		}
	}
}

// describe maps an error to its status code and a human description.
func describe(ctx context.Context, err error) (int, string) {

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError

	switch {
	case err == box.ErrResourceNotFound:
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
	case err == box.ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "the database is not operating, retry later"
	case errors.Is(err, service.ErrorDatasetNotFound),
		errors.Is(err, service.ErrorRunNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrorDatasetAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.As(err, &syntaxError):
		return http.StatusBadRequest, "Malformed JSON"
	case errors.As(err, &typeError):
		return http.StatusBadRequest, "Unexpected JSON type"
	case errors.Is(err, align.ErrInvalidParams),
		errors.Is(err, align.ErrLengthMismatch),
		errors.Is(err, align.ErrTriggersNotSorted),
		errors.Is(err, database.ErrInvalidName),
		errors.Is(err, service.ErrorInvalidJob),
		errors.Is(err, apidatasetv1.ErrBadRequest):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, histogram.ErrOutOfRange),
		errors.Is(err, histogram.ErrBinOverflow),
		errors.Is(err, histogram.ErrShape),
		errors.Is(err, events.ErrCapacityExceeded),
		errors.Is(err, apitoolsv1.ErrTooLarge):
		return http.StatusUnprocessableEntity, "Input cannot be processed"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		status, description := describe(ctx, err)
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(PrettyError{
			Message:     err.Error(),
			Description: description,
		})
	}
}
