// Package errs defines the structured error bodies returned by guards,
// generated endpoints and validation failures. Every error surfaces as a list
// of items so the response shape is uniform across all failure kinds.
package errs

import (
	"net/http"
)

// Code identifies a specific application error condition.
type Code string

// Application error codes
const (
	CodeTokenRequired Code = "TOKEN.REQUIRED"
	CodeTokenInvalid  Code = "TOKEN.INVALID"
	CodeTokenDenied   Code = "TOKEN.DENIED"
	CodeTokenExpired  Code = "TOKEN.EXPIRED"

	CodeHeaderAttributeMissing Code = "HEADER.ATTRIBUTE.MISSING"
	CodeHeaderAttributeInvalid Code = "HEADER.ATTRIBUTE.INVALID"

	CodeEndpointNotImplemented  Code = "ENDPOINT.NOT.IMPLEMENTED"
	CodeEndpointOperationDenied Code = "ENDPOINT.OPERATION.RESTRICTED"
	CodePermissionDenied        Code = "PERMISSION.DENIED"
	CodeValidationError         Code = "validation_error"
)

// Error type labels used in the `type` field of error items.
const (
	TypeAuthentication = "authentication_error"
	TypeAuthorization  = "authorization_error"
	TypeValidation     = "validation_error"
	TypeMissing        = "missing"
)

// messages maps each error code to its user-facing message.
var messages = map[Code]string{
	CodeTokenRequired:          "Access token is required. Modify your request and try again.",
	CodeTokenInvalid:           "Access token is invalid. Please provide a valid token and try again.",
	CodeTokenDenied:            "Access token is denied. The user does not exist or is suspended.",
	CodeTokenExpired:           "Your access token has expired. Try again with a valid token.",
	CodeHeaderAttributeMissing: "A required header parameter is missing.",
	CodeHeaderAttributeInvalid: "The header parameter provided is invalid.",
	CodeEndpointNotImplemented: "The requested endpoint is not yet implemented.",
	CodeEndpointOperationDenied: "This activity cannot be carried out because the " +
		"endpoint is restricted",
	CodePermissionDenied: "User does not have permission to perform this action",
	CodeValidationError:  "invalid parameter",
}

// Message returns the user-facing message for a code.
func (c Code) Message() string {
	return messages[c]
}

// Item is a single structured error entry in a response body.
type Item struct {
	Type string   `json:"type"`
	Code Code     `json:"code,omitempty"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

// Error is the structured error carried through the request pipeline until
// the application error handler renders it.
type Error struct {
	Status int    `json:"-"`
	Items  []Item `json:"detail"`
}

func (e *Error) Error() string {
	if len(e.Items) == 0 {
		return "request failed"
	}
	return e.Items[0].Msg
}

// New builds a structured error with a single item.
func New(status int, item Item) *Error {
	return &Error{Status: status, Items: []Item{item}}
}

// Authentication builds a 401 error for the given code, located at the
// authorization header.
func Authentication(code Code) *Error {
	return New(http.StatusUnauthorized, Item{
		Type: TypeAuthentication,
		Code: code,
		Loc:  []string{"header", "authorization"},
		Msg:  code.Message(),
	})
}

// Authorization builds a 403 error for a failed permission check.
func Authorization() *Error {
	return New(http.StatusForbidden, Item{
		Type: TypeAuthorization,
		Code: CodePermissionDenied,
		Loc:  []string{"header", "authorization"},
		Msg:  CodePermissionDenied.Message(),
	})
}

// Header builds a 401 error for a missing or invalid ambient parameter.
func Header(code Code, key string) *Error {
	return New(http.StatusUnauthorized, Item{
		Type: TypeAuthentication,
		Code: code,
		Loc:  []string{"header", key},
		Msg:  code.Message(),
	})
}

// OperationDenied is returned by generated routes whose handler is disabled.
func OperationDenied() *Error {
	return New(http.StatusUnauthorized, Item{
		Type: TypeAuthorization,
		Code: CodeEndpointOperationDenied,
		Loc:  []string{"path"},
		Msg:  CodeEndpointOperationDenied.Message(),
	})
}

// NotImplemented is returned by routes whose handler has not been populated.
func NotImplemented() *Error {
	return New(http.StatusUnprocessableEntity, Item{
		Type: TypeValidation,
		Code: CodeEndpointNotImplemented,
		Loc:  []string{"path"},
		Msg:  CodeEndpointNotImplemented.Message(),
	})
}

// Validation builds a 422 error for a payload or filter shape failure.
func Validation(key, msg string) *Error {
	return New(http.StatusUnprocessableEntity, Item{
		Type: TypeValidation,
		Loc:  []string{"body", key},
		Msg:  msg,
	})
}

// NotFound builds the structured validation error used when a resource id
// cannot be resolved on fetch, update or delete.
func NotFound(id string) *Error {
	return New(http.StatusUnprocessableEntity, Item{
		Type: TypeMissing,
		Loc:  []string{"path", "id"},
		Msg:  "resource id `" + id + "` does not exist",
	})
}
