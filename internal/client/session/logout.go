package session

import (
	"context"
	"io"
	"net/http"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/api"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/tokens"
	"github.com/mastereducationkz/lms-front-sub003/internal/logging"
)

// NewLogoutFunc builds the canonical logout procedure: a best-effort call to
// the logout endpoint followed by an unconditional wipe of local
// credentials. The httpc handed in must not carry the auth transport: the
// procedure is invoked from inside that transport when a refresh fails, and
// must not recurse into it.
func NewLogoutFunc(httpc *http.Client, baseURL string, tm *tokens.Manager, log logging.Logger) api.LogoutFunc {
	if log == nil {
		log = logging.Nop()
	}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/logout", nil)
		if err == nil {
			if token, terr := tm.AccessToken(ctx); terr == nil && token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			resp, derr := httpc.Do(req)
			if derr != nil {
				log.Warn(ctx, "logout request failed", "err", derr)
			} else {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}

		if err := tm.Clear(ctx); err != nil {
			return err
		}
		log.Info(ctx, "logged out")
		return nil
	}
}
