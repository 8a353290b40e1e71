package client

import "fmt"

// Error is returned for every failed call.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sociallogin: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("sociallogin: %s", e.Message)
}
