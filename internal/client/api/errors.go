package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mastereducationkz/lms-front-sub003/internal/common"
)

// Sentinel errors of the client's error taxonomy. Callers match them with
// errors.Is; ErrUnauthorized and ErrUnavailable are re-exported from common
// so the session layer does not need to import both packages.
var (
	ErrUnauthorized = common.ErrUnauthorized
	ErrUnavailable  = common.ErrUnavailable

	// ErrNetwork marks transport failures where no response was received.
	ErrNetwork = errors.New("network error")

	// ErrNoRefreshToken is the immediate-failure case of a refresh attempt
	// with no locally resolvable refresh token.
	ErrNoRefreshToken = errors.New("no refresh token")
)

// APIError is a non-2xx response, carrying the status code and the
// server-provided detail message when one was present in the body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}

// errorBody is the shape LMS endpoints use for error payloads. Older
// endpoints answer with "message" instead of "detail".
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// readDetail extracts the server-provided detail from an error response body.
// Returns "" when the body is absent or not in a recognized shape.
func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	if eb.Detail != "" {
		return eb.Detail
	}
	return eb.Message
}

// statusError maps a non-2xx response into the taxonomy: 401 becomes
// ErrUnauthorized (with detail attached when present), everything else an
// *APIError.
func statusError(resp *http.Response) error {
	detail := readDetail(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized {
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
		}
		return ErrUnauthorized
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

// mapRequestError classifies an error returned by http.Client.Do. Errors the
// auth transport produced itself (failed refresh, missing refresh token)
// travel wrapped in *url.Error and must pass through unchanged; anything else
// means no response was received and is a network failure.
func mapRequestError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		inner := ue.Err
		var apiErr *APIError
		switch {
		case errors.As(inner, &apiErr),
			errors.Is(inner, ErrUnauthorized),
			errors.Is(inner, ErrNoRefreshToken),
			errors.Is(inner, ErrNetwork):
			return inner
		}
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
