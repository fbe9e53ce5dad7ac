package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/hygieia-health/hygieia-cli/internal/api"
	"github.com/hygieia-health/hygieia-cli/internal/config"
	"github.com/hygieia-health/hygieia-cli/internal/logging"
	"github.com/hygieia-health/hygieia-cli/internal/storage"
	"github.com/hygieia-health/hygieia-cli/internal/store"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// pinger probes backend reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	session *store.Session
	cart    *store.Cart

	doctors      api.DoctorAPI
	products     api.ProductAPI
	appointments api.AppointmentAPI
	pinger       pinger

	storage *storage.Storage
	log     logging.Logger
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	st, err := storage.Open(ctx, c.DataDir)
	if err != nil {
		log.Error(ctx, "error initializing storage", "error", err.Error())
		return nil, err
	}

	// The session store and the request pipeline reference each other:
	// the pipeline needs a place to report a rejected refresh, the store
	// needs the pipeline to talk to the backend. The closure breaks the
	// cycle.
	var sess *store.Session
	apiClient := api.NewRESTClient(c.BaseURL, st, log, api.WithSessionExpiredHandler(func() {
		if sess != nil {
			sess.Expire()
			fmt.Println("Session expired, please log in again.")
		}
	}))
	sess = store.NewSession(apiClient, st, log)

	notifier := store.NotifierFunc(func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	})
	cart := store.NewCart(st, notifier, log)
	if err := cart.Load(ctx); err != nil {
		log.Warn(ctx, "failed to restore cart", "error", err.Error())
	}

	return &App{
		config:       c,
		session:      sess,
		cart:         cart,
		doctors:      apiClient,
		products:     apiClient,
		appointments: apiClient,
		pinger:       apiClient,
		storage:      st,
		log:          log,
		Mode:         ModeOnline,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		fmt.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.storage.Close()

	fmt.Println("Welcome to Hygieia CLI (type 'help' for commands)")

	// Prime the UI from the last persisted session, then let the backend
	// have the final word.
	a.session.RestoreSnapshot(ctx)
	a.session.CheckAuth(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated
}

func (a *App) getStatus() string {
	s := ""
	if state := a.session.State(); state.User != nil {
		s = state.User.Name + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher periodically probes the backend health endpoint
// and flips Mode accordingly. Each probe retries a couple of times with a
// fibonacci backoff so a single dropped packet does not flap the mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			backoff := retry.WithMaxRetries(2, retry.NewFibonacci(100*time.Millisecond))
			err := retry.Do(probeCtx, backoff, func(ctx context.Context) error {
				return retry.RetryableError(a.pinger.Ping(ctx))
			})
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
