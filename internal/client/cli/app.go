// Package cli implements the interactive shell: a REPL over the application
// services, with prompts for input and a small command set.
package cli

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"socialctl/internal/client/api"
	"socialctl/internal/client/broker"
	"socialctl/internal/client/config"
	"socialctl/internal/client/media"
	"socialctl/internal/client/repositories"
	"socialctl/internal/client/services"
	"socialctl/internal/client/session"
	"socialctl/internal/filex"
	"socialctl/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	api     api.Client
	session *session.Store
	repos   *repositories.Repositories

	feed    *services.FeedService
	posts   *services.PostService
	profile *services.ProfileService
	views   *services.CachedViewResolver

	reader *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dsn, err := cacheLocation(cfg.CacheDSN)
	if err != nil {
		return nil, err
	}
	repos, err := repositories.InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(cfg.BackendBaseURL, cfg.RequestTimeout)
	if err != nil {
		repos.DB.Close()
		return nil, err
	}

	brokerClient := broker.NewClient(cfg.BrokerBaseURL, cfg.RequestTimeout, log)
	views := services.NewCachedViewResolver(brokerClient, repos.ViewURLs, cfg.ViewURLCacheTTL, log)

	store := &media.HTTPStorage{Client: &http.Client{Timeout: cfg.RequestTimeout}}
	uploader := &media.BatchUploader{Tickets: brokerClient, Store: store, Views: views, Log: log}

	return &App{
		config:  cfg,
		log:     log,
		api:     apiClient,
		session: session.NewStore(log),
		repos:   repos,
		feed:    services.NewFeedService(apiClient, log),
		posts:   services.NewPostService(apiClient, uploader, log),
		profile: services.NewProfileService(services.ProfileServiceConfig{
			API:        apiClient,
			Views:      views,
			Tickets:    brokerClient,
			Store:      store,
			OutputSize: cfg.AvatarOutputSize,
			Log:        log,
		}),
		views:  views,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session, tidies the cache and drops into the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.repos.DB.Close()

	a.session.Subscribe(func(sess session.Session) {
		if !sess.LoggedIn() {
			return
		}
		if err := a.repos.Metadata.Set(ctx, "last_user_id", []byte(sess.UserID)); err != nil {
			a.log.Warn(ctx, "persist last user failed", "error", err)
		}
	})

	if err := a.session.Init(ctx, a.api); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if err := a.views.PurgeExpired(ctx); err != nil {
		a.log.Warn(ctx, "view url cache purge failed", "error", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

// cacheLocation puts a bare-filename DSN into the app's data subdirectory.
// Explicit paths and :memory: pass through untouched.
func cacheLocation(dsn string) (string, error) {
	if dsn == "" || strings.HasPrefix(dsn, ":") || strings.ContainsRune(dsn, os.PathSeparator) {
		return dsn, nil
	}
	dir, err := filex.EnsureSubDir(".socialctl")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dsn), nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().LoggedIn()
}

func (a *App) status() string {
	sess := a.session.Current()
	if !sess.LoggedIn() {
		return ""
	}
	if sess.Username != "" {
		return "(" + sess.Username + ")"
	}
	return "(" + sess.UserID + ")"
}
