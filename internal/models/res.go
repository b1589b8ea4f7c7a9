package models

// ApiMessage is the {code, message} envelope used for both plain success
// messages and user-visible failures. Internal error objects never leave the
// API in this shape.
type ApiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries field-level detail for 422 responses.
type ValidationErrorResponse struct {
	Code int         `json:"code"`
	Info interface{} `json:"info"`
}

func NewMessage(code int, message string) ApiMessage {
	return ApiMessage{Code: code, Message: message}
}

// NewError is NewMessage under its error-path name; both shapes are
// identical on the wire.
func NewError(code int, message string) ApiMessage {
	return ApiMessage{Code: code, Message: message}
}

func NewValidationError(code int, info interface{}) ValidationErrorResponse {
	return ValidationErrorResponse{Code: code, Info: info}
}
