package login

import (
	"github.com/BlackMission/sociallogin/internal/render"
)

// State is a position in the login state machine.
type State int

const (
	AwaitingProviderChoice State = iota
	RedirectedToProvider
	CallbackError
	LoginFailed
	LoginSucceeded
)

func (s State) String() string {
	switch s {
	case AwaitingProviderChoice:
		return "awaiting_provider_choice"
	case RedirectedToProvider:
		return "redirected_to_provider"
	case CallbackError:
		return "callback_error"
	case LoginFailed:
		return "login_failed"
	case LoginSucceeded:
		return "login_succeeded"
	default:
		return "unknown"
	}
}

// Page is the response variant a Result maps to.
type Page int

const (
	PageChooseProvider Page = iota
	PageError
	PageSuccess
	PageRedirect
)

// Result is the terminal state of one request and the data its response
// needs.
type Result struct {
	State State

	// Providers is set for the selection page.
	Providers []render.ProviderLink
	// Messages is set for the error page.
	Messages []string
	// Login is set on success.
	Login string
	// Location is the provider authorize URL for redirects.
	Location string
}

// Page reports which response the result renders to.
func (r Result) Page() Page {
	switch r.State {
	case RedirectedToProvider:
		return PageRedirect
	case CallbackError:
		return PageError
	case LoginSucceeded:
		return PageSuccess
	default:
		return PageChooseProvider
	}
}
