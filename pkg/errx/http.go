package errx

// HTTPErrorResponse represents a standard HTTP error response
type HTTPErrorResponse struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Type       string                 `json:"type"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"status_code"`
}

// ToHTTPResponse converts an Error to an HTTPErrorResponse
func (e *Error) ToHTTPResponse() HTTPErrorResponse {
	return HTTPErrorResponse{
		Code:       e.Code,
		Message:    e.Message,
		Type:       string(e.Type),
		Details:    e.Details,
		StatusCode: e.HTTPStatus,
	}
}

// From coerces any error into an *Error so transport layers can render a
// uniform response. Registered errors pass through unchanged; anything else
// becomes an internal error wrapping the original.
func From(err error) *Error {
	var e *Error
	if As(err, &e) {
		return e
	}
	return Wrap(err, "An unexpected error occurred", TypeInternal)
}
