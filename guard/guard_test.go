package guard

import (
	"testing"

	"github.com/paydesk/paydesk/session"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	authenticated := session.State{Kind: session.Authenticated, Principal: &session.Principal{}}

	tests := []struct {
		name  string
		state session.State
		route RouteKind
		want  Decision
	}{
		{"unresolved public waits", session.State{Kind: session.Unresolved}, Public, Wait},
		{"unresolved protected waits", session.State{Kind: session.Unresolved}, Protected, Wait},
		{"anonymous public allowed", session.State{Kind: session.Anonymous}, Public, Allow},
		{"anonymous protected redirects to login", session.State{Kind: session.Anonymous}, Protected, RedirectLogin},
		{"authenticated public redirects home", authenticated, Public, RedirectHome},
		{"authenticated protected allowed", authenticated, Protected, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.route))
		})
	}
}
