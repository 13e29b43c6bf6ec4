package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/tokens"
	"github.com/mastereducationkz/lms-front-sub003/internal/logging"
)

// LogoutFunc is the canonical logout procedure: best-effort server call plus
// unconditional wipe of local credentials. It is supplied to the Transport at
// construction time and invoked when a token refresh fails for good.
type LogoutFunc func(ctx context.Context) error

// defaultRefreshTimeout bounds the refresh call itself; the triggering
// request's own deadline does not apply to it (see doRefresh).
const defaultRefreshTimeout = 15 * time.Second

type ctxKey int

const (
	skipRefreshKey ctxKey = iota
	skipAuthKey
)

// WithoutRefresh marks the request context so a 401 response is returned
// as-is instead of triggering a token refresh.
func WithoutRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipRefreshKey, true)
}

// WithoutAuth marks the request context so no Authorization header is
// attached, even when a token is resolvable. Used by the login call, which
// must never carry a stale credential.
func WithoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey, true)
}

func flagged(ctx context.Context, key ctxKey) bool {
	v, _ := ctx.Value(key).(bool)
	return v
}

// exemptPaths are the auth endpoints that must never recurse into the
// refresh machinery, whatever status they return.
var exemptPaths = []string{loginPath, refreshPath, logoutPath}

func isExemptURL(u *url.URL) bool {
	for _, p := range exemptPaths {
		if strings.HasSuffix(u.Path, p) {
			return true
		}
	}
	return false
}

// Options configures a Transport.
type Options struct {
	// Base is the underlying RoundTripper; http.DefaultTransport if nil.
	Base http.RoundTripper

	// BaseURL is the normalized API base URL, used for the refresh call.
	BaseURL string

	// Logout is invoked (best-effort) when a refresh fails for good.
	Logout LogoutFunc

	// OnAuthFailure fires at most once per failure episode, after local
	// credentials have been purged. The CLI uses it to drop back to the
	// logged-out prompt.
	OnAuthFailure func()

	// RefreshTimeout bounds the refresh network call;
	// defaultRefreshTimeout if zero.
	RefreshTimeout time.Duration

	Logger logging.Logger
}

// Transport is an http.RoundTripper that attaches the current access token
// as a bearer credential and transparently retries a request once after
// refreshing an expired token pair. Refreshes are single-flight: concurrent
// 401s park on the one outstanding refresh call and are released FIFO.
type Transport struct {
	base           http.RoundTripper
	baseURL        string
	tokens         *tokens.Manager
	logout         LogoutFunc
	onAuthFailure  func()
	refreshTimeout time.Duration
	log            logging.Logger

	refresher refresher
}

// NewTransport builds the authenticating transport over the given token
// manager.
func NewTransport(tm *tokens.Manager, opts Options) *Transport {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := opts.RefreshTimeout
	if timeout <= 0 {
		timeout = defaultRefreshTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Transport{
		base:           base,
		baseURL:        opts.BaseURL,
		tokens:         tm,
		logout:         opts.Logout,
		onAuthFailure:  opts.OnAuthFailure,
		refreshTimeout: timeout,
		log:            log,
	}
}

// RoundTrip implements http.RoundTripper.
//
// A 401 is intercepted only when the request is not an exempt auth endpoint,
// is not flagged WithoutRefresh, and its body can be re-materialized. The
// replay happens inside this frame and its result is returned directly, so a
// request is retried at most once by construction.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	out := req
	if !flagged(ctx, skipAuthKey) {
		if token, err := t.tokens.AccessToken(ctx); err == nil && token != "" {
			out = req.Clone(ctx)
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if flagged(ctx, skipRefreshKey) || isExemptURL(req.URL) {
		return resp, nil
	}
	if req.Body != nil && req.GetBody == nil {
		// The body cannot be replayed byte-for-byte; hand the 401 back.
		return resp, nil
	}

	token, rerr := t.refresher.token(ctx, t)
	if rerr != nil {
		resp.Body.Close()
		return nil, rerr
	}
	resp.Body.Close()

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, berr
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)

	// A second 401 propagates unchanged.
	return t.base.RoundTrip(retry)
}

// authFailure runs the unrecoverable-failure side effects: the registered
// logout procedure (errors swallowed), then the one-shot latch purging local
// credentials and signalling the auth-failure hook.
func (t *Transport) authFailure(ctx context.Context) {
	if t.logout != nil {
		if err := t.logout(ctx); err != nil {
			t.log.Warn(ctx, "logout after failed refresh", "err", err)
		}
	}
	if !t.refresher.trip() {
		return
	}
	if err := t.tokens.Clear(ctx); err != nil {
		t.log.Error(ctx, "purge credentials after failed refresh", "err", err)
	}
	if t.onAuthFailure != nil {
		t.onAuthFailure()
	}
}
