// Package transport decorates outbound HTTP requests with the session
// credential and watches responses for credential rejection.
package transport

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CredentialSource yields the credential to attach to outbound requests.
type CredentialSource interface {
	// Token returns the current bearer token and whether one is held.
	Token() (string, bool)
}

// RejectionSink is notified when the server rejects an attached credential.
type RejectionSink interface {
	// CredentialRejected reports that a request carrying the given token
	// received an authentication-failure response.
	CredentialRejected(token string)
}

// Authorizer is an http.RoundTripper that injects the current bearer token
// into every request and reports credential rejections to the sink.
//
// Network-level failures pass through unchanged. Only 401 responses from
// requests that actually carried a token are reported; every other status
// is the caller's responsibility.
type Authorizer struct {
	base   http.RoundTripper
	source CredentialSource
	sink   RejectionSink
}

var _ http.RoundTripper = (*Authorizer)(nil)

// Option configures an Authorizer.
type Option func(*Authorizer)

// WithBase sets the underlying round tripper. Default: http.DefaultTransport.
func WithBase(rt http.RoundTripper) Option {
	return func(a *Authorizer) {
		a.base = rt
	}
}

// New creates an Authorizer wired to the given source and sink.
func New(source CredentialSource, sink RejectionSink, opts ...Option) *Authorizer {
	a := &Authorizer{
		base:   http.DefaultTransport,
		source: source,
		sink:   sink,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	token, held := a.source.Token()
	if held {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := a.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && held && !skipRejection(req.Context()) {
		a.sink.CredentialRejected(token)
	}
	return resp, nil
}

type contextKey int

const skipRejectionKey contextKey = iota

// WithoutRejectionDetection marks the request so that a 401 response is not
// reported to the rejection sink. Used for operations whose 401 means the
// submitted credentials were wrong, not that the held token is stale.
func WithoutRejectionDetection(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipRejectionKey, true)
}

func skipRejection(ctx context.Context) bool {
	v, _ := ctx.Value(skipRejectionKey).(bool)
	return v
}
