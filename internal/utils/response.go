package utils

// APIResponse is the envelope every journal-service endpoint responds with.
// Field is set when the error is a validation failure on one payload field.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Field   string      `json:"field,omitempty"`
}

func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func ErrorResponse(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

func FieldErrorResponse(field, message string) APIResponse {
	return APIResponse{Success: false, Error: message, Field: field}
}
