// Package session owns the process-wide session state: who the caller is,
// what they may do, and how that decision reacts to credential rejection.
package session

// Kind discriminates the session state union.
type Kind int

const (
	// Unresolved means startup hydration has not finished; credential
	// presence is unknown.
	Unresolved Kind = iota
	// Anonymous means no valid credential is held.
	Anonymous
	// Authenticated means a credential was accepted and a Principal is set.
	Authenticated
)

func (k Kind) String() string {
	switch k {
	case Unresolved:
		return "unresolved"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is the session's tagged union. Principal is non-nil exactly when
// Kind is Authenticated.
type State struct {
	Kind      Kind
	Principal *Principal
}

// Loading reports whether startup hydration is still in progress.
func (s State) Loading() bool {
	return s.Kind == Unresolved
}
