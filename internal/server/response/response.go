// Package response writes the API's JSON envelope. Every body is
// {"data": ..., "error": ...} with exactly one of the two set.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/venuemap/pkg/errors"
)

// Error codes.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeNoData             = "NO_DATA"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Response is the API envelope.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success wraps data in the envelope.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail builds an error envelope.
func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are sent; an encoding failure can only be dropped.
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes data with 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail(CodeBadRequest, message, details))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail(CodeUnauthorized, message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail(CodeNotFound, message, details))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(CodeMethodNotAllowed,
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint"))
}

// NoData writes a 422 response for a sync that resolved no venues.
func NoData(w http.ResponseWriter, details string) {
	JSON(w, http.StatusUnprocessableEntity, Fail(CodeNoData,
		"Failed to extract venue data from the model response", details))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, details string) {
	JSON(w, http.StatusTooManyRequests, Fail(CodeRateLimited, "Rate limit exceeded", details))
}

// BadGateway writes a 502 response for provider failures.
func BadGateway(w http.ResponseWriter, details string) {
	JSON(w, http.StatusBadGateway, Fail(CodeUpstream, "Model provider request failed", details))
}

// InternalError writes a 500 response. The cause is not exposed.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(CodeInternal,
		"Internal server error", "An unexpected error occurred"))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, details string) {
	JSON(w, http.StatusServiceUnavailable, Fail(CodeServiceUnavailable, "Service unavailable", details))
}

// Status returns the HTTP status an error maps to.
func Status(err error) int {
	var (
		apiErr  *errors.APIError
		authErr *errors.AuthenticationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsNoData(err):
		return http.StatusUnprocessableEntity
	case errors.IsValidationError(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &apiErr), errors.As(err, &authErr),
		errors.Is(err, errors.ErrTimeout), errors.Is(err, errors.ErrCanceled):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorFromType writes the response matching err's type. It looks
// through wrapping, so a *errors.SyncError maps by its cause.
func ErrorFromType(w http.ResponseWriter, err error) {
	switch Status(err) {
	case http.StatusUnprocessableEntity:
		NoData(w, err.Error())
	case http.StatusBadRequest:
		BadRequest(w, err.Error(), "")
	case http.StatusNotFound:
		NotFound(w, err.Error(), "")
	case http.StatusBadGateway:
		BadGateway(w, err.Error())
	default:
		InternalError(w, err)
	}
}
