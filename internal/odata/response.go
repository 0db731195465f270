package odata

import "net/http"

const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"

	ContentTypeJSON = "application/json"

	queryFailedMessage = "The query could not be executed, an error was returned"
	postFailedMessage  = "The post could not be executed, an error was returned"
)

// Response is the uniform outcome of a backend call. Success and failure share the same shape and
// are told apart by Status only.
type Response struct {
	Status     string `json:"Status"`
	Error      string `json:"Error"`
	StatusCode int    `json:"StatusCode"`
	Headers    string `json:"Headers"`
	Data       string `json:"Data"`
}

// Succeeded reports whether the backend accepted the call.
func (r *Response) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

func success(statusCode int, data string) *Response {
	return &Response{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Headers:    ContentTypeJSON,
		Data:       data,
	}
}

// Failure builds a failed Response.
func Failure(statusCode int, message, data string) *Response {
	return &Response{
		Status:     StatusFailed,
		Error:      message,
		StatusCode: statusCode,
		Headers:    ContentTypeJSON,
		Data:       data,
	}
}

// isSuccessStatus reports whether code is in the 2xx range.
func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
