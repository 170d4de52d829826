package dto

// Envelope is the shape of every JSON body the API returns
type Envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    any           `json:"data,omitempty"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails points at the input that caused a failure
type ErrorDetails struct {
	Field string `json:"field"`
	Error string `json:"error"`
}
