package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/tokens"
)

type refreshResult struct {
	token string
	err   error
}

// refresher serializes token refresh. The first 401 initiates the network
// call; every 401 that arrives while it is outstanding parks on a waiter
// channel and is released, in arrival order, when the call settles. The
// latched flag is the one-shot guard against duplicate logout/redirect side
// effects; it resets on the next successful refresh.
type refresher struct {
	mu       sync.Mutex
	inFlight bool
	waiters  []chan refreshResult
	latched  bool
}

// token returns a fresh access token, either by performing the refresh call
// or by waiting on the one already in flight. On failure every parked caller
// receives the same refresh error and no queued request is replayed.
func (r *refresher) token(ctx context.Context, t *Transport) (string, error) {
	r.mu.Lock()
	if r.inFlight {
		ch := make(chan refreshResult, 1)
		r.waiters = append(r.waiters, ch)
		r.mu.Unlock()

		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	r.inFlight = true
	r.mu.Unlock()

	token, err := t.doRefresh(ctx)

	r.mu.Lock()
	r.inFlight = false
	waiters := r.waiters
	r.waiters = nil
	if err == nil {
		r.latched = false
	}
	r.mu.Unlock()

	for _, ch := range waiters {
		ch <- refreshResult{token: token, err: err}
	}

	if err != nil {
		t.authFailure(ctx)
	}
	return token, err
}

// trip sets the failure latch. Returns true only for the first trip of the
// current episode.
func (r *refresher) trip() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latched {
		return false
	}
	r.latched = true
	return true
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// doRefresh issues the single refresh call and stores the resulting pair. A
// missing refresh token is an immediate failure. The call runs detached from
// the triggering request's deadline: cancelling one queued request must not
// fail the whole batch, so only the transport's own refresh timeout applies.
func (t *Transport) doRefresh(ctx context.Context) (string, error) {
	refresh, err := t.tokens.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("load refresh token: %w", err)
	}
	if refresh == "" {
		return "", ErrNoRefreshToken
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.refreshTimeout)
	defer cancel()

	body, err := json.Marshal(refreshRequest{RefreshToken: refresh})
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, t.baseURL+refreshPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.log.Warn(ctx, "token refresh rejected", "status", resp.StatusCode)
		return "", statusError(resp)
	}

	var pair tokens.Pair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if err := t.tokens.SetPair(ctx, pair); err != nil {
		return "", err
	}

	t.log.Info(ctx, "token pair refreshed")
	return pair.AccessToken, nil
}
