package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/yama6a/pathe-portal/internal/app/api"
	"github.com/yama6a/pathe-portal/internal/app/crawler"
	"github.com/yama6a/pathe-portal/internal/app/parser"
	"github.com/yama6a/pathe-portal/internal/app/portal"
	"github.com/yama6a/pathe-portal/internal/pkg/config"
	"github.com/yama6a/pathe-portal/internal/pkg/http"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"github.com/yama6a/pathe-portal/internal/pkg/store"
	"github.com/yama6a/pathe-portal/internal/pkg/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errNoAccount = errors.New("no account configured, set PATHE_USERNAME and PATHE_PASSWORD or PATHE_ACCOUNTS_FILE")

type app struct {
	envFile string
	account string
	debug   bool

	cfg    config.Config
	logger *zap.Logger
}

func (a *app) init(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.envFile, os.LookupEnv)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if a.debug || cfg.Debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	loggerConfig.DisableStacktrace = true
	logger, err := loggerConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.logger = logger

	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) parser() *parser.Parser {
	return parser.New(a.logger.Named("parser"), utils.PortalLocation)
}

// selectedAccount returns the --account account or the first configured one.
func (a *app) selectedAccount() (config.Account, error) {
	if len(a.cfg.Accounts) == 0 {
		return config.Account{}, errNoAccount
	}
	if a.account == "" {
		return a.cfg.Accounts[0], nil
	}
	for _, acc := range a.cfg.Accounts {
		if acc.Name == a.account {
			return acc, nil
		}
	}
	return config.Account{}, fmt.Errorf("unknown account %q", a.account)
}

// portalClient opens a new portal session with its own cookie jar.
func (a *app) portalClient(acc config.Account) (*portal.Client, error) {
	hc, err := http.NewSessionHTTPClient(a.cfg.Timeout, a.cfg.InsecureTLS)
	if err != nil {
		return nil, err //nolint:wrapcheck // already descriptive
	}
	client := http.NewClient(hc, a.cfg.Timeout, http.WithDecoder(http.DecoderWindows1252))

	return portal.NewClient(client, a.parser(), a.cfg.BaseURL,
		portal.Credentials{Username: acc.Username, Password: acc.Password},
		a.logger.Named("portal").With(zap.String("account", acc.Name)),
	), nil
}

// apiClient returns a logged-in JSON API client.
func (a *app) apiClient(ctx context.Context, acc config.Account) (*api.Client, error) {
	client := api.NewClient(a.cfg.APIURL, a.cfg.Timeout, a.logger.Named("api").With(zap.String("account", acc.Name)))
	if _, err := client.Login(ctx, acc.Username, acc.Password); err != nil {
		return nil, err //nolint:wrapcheck // already descriptive
	}
	return client, nil
}

// loggedInHistory adapts the API client to a crawler.HistorySource that logs in and out itself.
type loggedInHistory struct {
	app *app
	acc config.Account
}

func (s loggedInHistory) History(ctx context.Context) ([]model.HistoryItem, error) {
	client, err := s.app.apiClient(ctx, s.acc)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := client.Logout(ctx); err != nil {
			s.app.logger.Warn("api logout failed", zap.String("account", s.acc.Name), zap.Error(err))
		}
	}()
	return client.History(ctx) //nolint:wrapcheck // already descriptive
}

func (a *app) historySource(acc config.Account) (crawler.HistorySource, error) {
	if acc.Source == config.SourceAPI {
		return loggedInHistory{app: a, acc: acc}, nil
	}
	client, err := a.portalClient(acc)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// store returns a Postgres store when PATHE_DB_URL is set, an in-memory store otherwise.
func (a *app) store(ctx context.Context) (store.Store, func(), error) {
	if a.cfg.DBURL == "" {
		return store.NewMemoryStore(a.logger.Named("store")), func() {}, nil
	}

	pool, err := pgxpool.Connect(ctx, a.cfg.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	pg := store.NewPostgres(pool, 10*time.Second, a.logger.Named("store"))
	if err := pg.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err //nolint:wrapcheck // already descriptive
	}
	return pg, pool.Close, nil
}
