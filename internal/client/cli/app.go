package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/sahayak/sahayak-backend/internal/client/api"
	"github.com/sahayak/sahayak-backend/internal/client/draft"
	"github.com/sahayak/sahayak-backend/internal/client/session"
)

// App wires the API client, session store and draft store into the REPL
type App struct {
	config   *Config
	client   api.Client
	sessions *session.Store
	drafts   *draft.Store
	reader   *bufio.Reader
}

// NewApp constructs the CLI application. The session file is hydrated
// here so every later gate decision sees a resolved session.
func NewApp(cfg *Config) (*App, error) {
	sessions := session.NewStore(cfg.ProfileDir)
	if err := sessions.Hydrate(); err != nil {
		return nil, err
	}

	client := api.New(cfg.ServerURL, sessions.Token)

	return &App{
		config:   cfg,
		client:   client,
		sessions: sessions,
		drafts:   draft.NewStore(cfg.ProfileDir),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current() != nil
}

// status renders the prompt suffix: the display name, or "guest"
func (a *App) status() string {
	if sess := a.sessions.Current(); sess != nil && sess.User != nil {
		if sess.User.IsAdmin() {
			return sess.User.DisplayName + " (admin)"
		}
		return sess.User.DisplayName
	}
	return "guest"
}
