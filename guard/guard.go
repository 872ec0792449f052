// Package guard maps session state to navigation decisions. It is the
// primary consumer of the session manager: public views bounce authenticated
// callers to the home view, protected views bounce anonymous callers to the
// login view, and nothing resolves while hydration is in flight.
package guard

import "github.com/paydesk/paydesk/session"

// RouteKind classifies a view.
type RouteKind int

const (
	// Public views (login) are reachable without a session.
	Public RouteKind = iota
	// Protected views require an authenticated session.
	Protected
)

// Decision is the guard's verdict for a navigation attempt.
type Decision int

const (
	// Wait means hydration has not resolved; render nothing yet.
	Wait Decision = iota
	// Allow admits the caller to the requested view.
	Allow
	// RedirectLogin sends the caller to the public entry point.
	RedirectLogin
	// RedirectHome sends an already-authenticated caller to the home view.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Decide returns the verdict for navigating to a view of the given kind
// under the given session state. It is pure and total.
func Decide(state session.State, route RouteKind) Decision {
	if state.Loading() {
		return Wait
	}
	authenticated := state.Kind == session.Authenticated
	if route == Public {
		if authenticated {
			return RedirectHome
		}
		return Allow
	}
	if authenticated {
		return Allow
	}
	return RedirectLogin
}
