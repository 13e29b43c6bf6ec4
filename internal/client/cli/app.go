package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/api"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/config"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/credstore"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/models"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/session"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/tokens"
	"github.com/mastereducationkz/lms-front-sub003/internal/logging"
	"github.com/mastereducationkz/lms-front-sub003/internal/netx"

	_ "modernc.org/sqlite"
)

// App wires the client stack together and drives the interactive loop.
type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Service
	store   *credstore.SQLiteStore

	user   *models.User
	reader *bufio.Reader
	log    logging.Logger
}

// NewApp assembles the full client: credential store (with the one-time
// legacy migration), token manager, logout procedure, authenticating
// transport, typed API client, and session facade.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	baseURL, err := netx.NormalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	store, err := credstore.OpenSQLite(ctx, cfg.CredentialDB)
	if err != nil {
		return nil, err
	}

	legacy := credstore.NewFileStore(cfg.LegacyCredentialFile)
	if err := credstore.MigrateLegacy(ctx, legacy, store, log); err != nil {
		log.Warn(ctx, "legacy credential migration failed", "err", err)
	}

	tm := tokens.NewManager(store)

	app := &App{config: cfg, store: store, reader: bufio.NewReader(os.Stdin), log: log}

	// The logout procedure uses an uninstrumented http.Client: it is invoked
	// from inside the auth transport and must not recurse into it.
	plain := &http.Client{Timeout: cfg.RequestTimeout}
	logout := session.NewLogoutFunc(plain, baseURL, tm, log)

	transport := api.NewTransport(tm, api.Options{
		BaseURL:       baseURL,
		Logout:        logout,
		OnAuthFailure: app.sessionExpired,
		Logger:        log,
	})
	httpc := &http.Client{Transport: transport, Timeout: cfg.RequestTimeout}

	app.api = api.NewClient(baseURL, httpc, log)
	app.session = session.New(app.api, tm, logout, log)

	// Resume a persisted session if the stored tokens are still live.
	if user, err := app.session.CachedUser(ctx); err == nil && user != nil {
		if app.session.IsAuthenticated(ctx) {
			app.user = user
		}
	}

	return app, nil
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	fmt.Println("LMS client (type 'help' for commands)")
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// sessionExpired is the transport's auth-failure hook: forget the in-memory
// user so the prompt drops back to the logged-out state.
func (a *App) sessionExpired() {
	a.user = nil
	printlnFn("Session expired, please log in again.")
}
