package client

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"travelcms/validator"
)

// RequestError is the single error shape of a failed request. Status is zero
// when the request never got a response.
type RequestError struct {
	Status  int
	Message string
	// Details holds the located entries of a list-form detail body.
	Details []validator.FieldError

	cancelled bool
}

func (e *RequestError) Error() string {
	return e.Message
}

// Retryable reports transport failures and server errors. Cancelled or
// expired contexts are never retryable.
func (e *RequestError) Retryable() bool {
	if e.Status >= 500 {
		return true
	}
	return e.Status == 0 && !e.cancelled
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type detailEntry struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func parseErrorBody(status int, payload []byte) *RequestError {
	out := &RequestError{Status: status}
	var body errorBody
	if err := json.Unmarshal(payload, &body); err == nil && len(body.Detail) > 0 {
		var text string
		if err := json.Unmarshal(body.Detail, &text); err == nil && text != "" {
			out.Message = text
			return out
		}
		var entries []detailEntry
		if err := json.Unmarshal(body.Detail, &entries); err == nil && len(entries) > 0 {
			for _, e := range entries {
				loc := make([]string, 0, len(e.Loc))
				for _, part := range e.Loc {
					loc = append(loc, fmt.Sprint(part))
				}
				out.Details = append(out.Details, validator.FieldError{Loc: loc, Msg: e.Msg})
			}
			out.Message = validator.Render(out.Details)
			return out
		}
	}
	out.Message = strings.TrimSpace(fmt.Sprintf("%d %s", status, http.StatusText(status)))
	return out
}

func transportMessage(err error) string {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// StatusOf returns the HTTP status of a *RequestError, or zero.
func StatusOf(err error) int {
	var reqErr *RequestError
	if stderrors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
