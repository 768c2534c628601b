package llm

import "fmt"

// ExternalServiceError indicates the completion service call failed or timed
// out. Message carries the upstream error text when the service supplied one.
type ExternalServiceError struct {
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("completion service: %s", e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("completion service: %v", e.Err)
	}
	return "completion service request failed"
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// InvalidRatingError indicates the service responded but no canonical rating
// could be extracted from the reply.
type InvalidRatingError struct {
	Content string
}

func (e *InvalidRatingError) Error() string {
	return "completion service returned an invalid rating"
}
