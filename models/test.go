package models

type TestStatus string

const (
	TestStatusSuccess TestStatus = "success"
	TestStatusError   TestStatus = "error"
)

// TestGetResponse reports whether the model server can be reached. It is
// always returned with a 200 status.
type TestGetResponse struct {
	Status       TestStatus `json:"status"`
	Message      string     `json:"message"`
	TestResponse *string    `json:"test_response,omitempty"`
	Detail       string     `json:"detail,omitempty"`
}
