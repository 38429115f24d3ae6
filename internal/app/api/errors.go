package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoToken is returned by a TokenSource when no bearer token is available.
var ErrNoToken = errors.New("api: no bearer token")

// ErrInvalidResponse marks a 2xx response whose body did not decode into, or
// validate as, the expected shape.
var ErrInvalidResponse = errors.New("api: invalid response")

// Error is the single error shape returned by every client method.
//
// StatusCode is 0 when no response was received (network failure, canceled
// context, missing token). Message holds the server's own message when it
// sent one.
type Error struct {
	Endpoint   string
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("api %s: %v", e.Endpoint, e.Err)
	case e.Message != "":
		return fmt.Sprintf("api %s: %d %s", e.Endpoint, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api %s: %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api %s: %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *Error) Unwrap() error { return e.Err }

// errorBody covers the error payloads the API sends.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  []struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	} `json:"errors"`
}

// serverMessage pulls a human message out of an error body, if any.
func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if m := strings.TrimSpace(eb.Message); m != "" {
		return m
	}
	if m := strings.TrimSpace(eb.Error); m != "" {
		return m
	}
	for _, e := range eb.Errors {
		if e.Msg != "" {
			return e.Msg
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return ""
}

// Message returns the server-provided message carried by err, or fallback
// when the server sent none (or err is not an API error).
func Message(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// StatusCode returns the HTTP status behind err, or 0.
func StatusCode(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err means the session token is missing,
// expired, or rejected.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized || errors.Is(err, ErrNoToken)
}

// IsNotFound reports a 404 from the API.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }
