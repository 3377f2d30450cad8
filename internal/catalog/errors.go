package catalog

import (
	"errors"
	"fmt"
)

// APIError is returned by HTTPRequester when the API answers with a 4xx or 5xx.
// Code and Message are filled when the body carries them.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error (HTTP %d, %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Body)
}

// RedemptionError carries the reason the API gave for refusing a
// redemption code.
type RedemptionError struct {
	Code    string
	Message string
	Err     error
}

func (e *RedemptionError) Error() string {
	return fmt.Sprintf("redemption code refused (%s): %s", e.Code, e.Message)
}

func (e *RedemptionError) Unwrap() error {
	return e.Err
}

// classifyRedemptionError surfaces server-reported denial reasons. Errors
// without a reason code are returned unchanged.
func classifyRedemptionError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code == "" {
		return err
	}
	return &RedemptionError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Err:     err,
	}
}
