package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/schoolctl/schoolctl/internal/errors"
)

// Error is the uniform failure shape returned by every operation. Callers
// read Message; they never branch on raw status codes.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Result pairs a decoded payload with the optional backend message that
// accompanied it.
type Result[T any] struct {
	Data    T
	Message string
}

// envelope is the backend's success body: a payload field plus an optional
// human-readable message.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorBody is the backend's failure body.
type errorBody struct {
	Message string `json:"message"`
}

// payload is the normalized outcome of one successful request attempt.
type payload struct {
	data    json.RawMessage
	message string
}

// normalize classifies a raw HTTP response.
//
//   - 401 yields the token-expired sentinel, consumed only by the retry
//     executor, never by callers.
//   - A success status with a JSON body decodes into a payload; a non-JSON
//     body normalizes to an empty payload so an otherwise-successful write is
//     not reported as a failure.
//   - Any other status yields *Error with the backend's message field when
//     present, else a generic status-coded message. A malformed error body
//     keeps the status-derived message rather than a parse error.
func normalize(resp *http.Response) (payload, error) {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return payload{}, errors.ErrTokenExpired
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		body = nil
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var env envelope
		if len(body) == 0 || json.Unmarshal(body, &env) != nil {
			return payload{}, nil
		}
		return payload{data: env.Data, message: env.Message}, nil
	}

	message := fmt.Sprintf("HTTP error, status=%d", resp.StatusCode)
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil && eb.Message != "" {
		message = eb.Message
	}

	return payload{}, &Error{Status: resp.StatusCode, Message: message}
}
