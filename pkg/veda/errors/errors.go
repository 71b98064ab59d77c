package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrInvalidURI = fmt.Errorf("invalid uri")
var ErrMalformedValue = fmt.Errorf("malformed value")
var ErrMalformedIndividual = fmt.Errorf("malformed individual")

var ErrAuthentication = fmt.Errorf("authentication failed")
var ErrBadRequest = fmt.Errorf("bad request")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrInternal = fmt.Errorf("internal error")
var ErrNoTicket = fmt.Errorf("no ticket")
var ErrNotFound = fmt.Errorf("not found")
var ErrOperationFailed = fmt.Errorf("operation failed")
var ErrRequest = fmt.Errorf("request error")
var ErrServer = fmt.Errorf("server error")
var ErrUnexpectedResponse = fmt.Errorf("unexpected response")

// Status codes used by the platform in addition to the standard http codes
const (
	StatusAuthenticationFailed int = 472
	StatusOperationFailed      int = 473
)

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewInvalidURIError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidURI,
	}
}

func NewMalformedValueError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrMalformedValue,
	}
}

func NewMalformedIndividualError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrMalformedIndividual,
	}
}

func NewAuthenticationError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrAuthentication,
	}
}

func NewBadRequestError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrBadRequest,
	}
}

func NewNoTicketError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrNoTicket,
	}
}

func NewNotFoundError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrNotFound,
	}
}

func NewOperationFailedError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrOperationFailed,
	}
}

func NewServerError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrServer,
	}
}

func NewUnexpectedResponseError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnexpectedResponse,
	}
}

// NewErrorFromStatusCode maps a non successful response from the platform to one of
// the exported error values. The response body is included in the message when present.
func NewErrorFromStatusCode(code int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if len(detail) > 256 {
		detail = strings.ToValidUTF8(detail[:256], "")
	}

	withDetail := func(msg string) string {
		if detail == "" {
			return msg
		}
		return fmt.Sprintf("%s: %s", msg, detail)
	}

	switch {
	case code == StatusAuthenticationFailed:
		return NewAuthenticationError(withDetail("authentication failed"))
	case code == StatusOperationFailed:
		return NewOperationFailedError(withDetail("request was invalid or operation failed"))
	case code == http.StatusBadRequest:
		return NewBadRequestError(withDetail("bad request"))
	case code == http.StatusNotFound:
		return NewNotFoundError(withDetail("not found"))
	case code >= http.StatusInternalServerError:
		return NewServerError(withDetail(fmt.Sprintf("server error: %d", code)))
	}

	return NewUnexpectedResponseError(withDetail(fmt.Sprintf("unexpected status code: %d", code)))
}

// StatusCodeFromError is the inverse of NewErrorFromStatusCode and is used when
// reporting errors back to a client.
func StatusCodeFromError(err error) int {
	for _, m := range []struct {
		target error
		code   int
	}{
		{ErrAuthentication, StatusAuthenticationFailed},
		{ErrNoTicket, StatusAuthenticationFailed},
		{ErrOperationFailed, StatusOperationFailed},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrMalformedIndividual, http.StatusBadRequest},
		{ErrMalformedValue, http.StatusBadRequest},
		{ErrInvalidURI, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
	} {
		if stderrors.Is(err, m.target) {
			return m.code
		}
	}

	return http.StatusInternalServerError
}
