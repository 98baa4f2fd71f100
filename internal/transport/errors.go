package transport

import "fmt"

// Twilio error codes with a dedicated operator message.
const (
	CodeUnverifiedNumber    = 21608
	CodeInvalidNumber       = 21211
	CodeSenderMisconfigured = 21606
)

// VerifyNumbersURL is where trial accounts verify recipient numbers.
const VerifyNumbersURL = "https://console.twilio.com/us1/develop/phone-numbers/manage/verified"

// APIError is a non-2xx answer from the Messages API.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Raw        string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("twilio status %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("twilio status %d: %s", e.StatusCode, e.Raw)
}

// UserMessage returns the operator-facing explanation of the failure.
func (e *APIError) UserMessage() string {
	return TranslateErrorCode(e.Code, e.Message)
}

// TranslateErrorCode maps a Twilio error code to an operator-facing message.
// Unknown codes fall back to the API message, then to a generic text.
func TranslateErrorCode(code int, message string) string {
	switch code {
	case CodeUnverifiedNumber:
		return "Phone number not verified. For trial accounts, verify the number at: " + VerifyNumbersURL
	case CodeInvalidNumber:
		return "Invalid phone number format"
	case CodeSenderMisconfigured:
		return "Twilio phone number not configured correctly"
	}
	if message != "" {
		return message
	}
	return "Failed to send prompt"
}
