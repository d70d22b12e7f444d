package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/deepclear/manifest/internal/api"
	"github.com/deepclear/manifest/internal/config"
	"github.com/deepclear/manifest/internal/session"
	"github.com/deepclear/manifest/internal/state"
	"github.com/deepclear/manifest/internal/ui"
)

// Options configure the manifest application.
type Options struct {
	ConfigPath  string // empty uses ~/.config/manifest/config.toml
	SessionPath string // empty uses the config's session_file
}

// Run boots the console TUI until the context is cancelled. Without a stored
// session the interactive login form runs first.
func Run(ctx context.Context, opts Options) error {
	cfg, client, sessions, closeLogs, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer closeLogs()

	sess, ok := sessions.Load()
	if !ok {
		sess, err = runLoginForm(ctx, client, sessions)
		if err != nil {
			return err
		}
	}
	client.SetToken(sess.Token)
	log.Info("session loaded", "admin", sess.AdminName, "department", sess.Department.String())

	return ui.Run(ui.Options{
		Context:  ctx,
		Client:   client,
		Store:    &state.Store{},
		Session:  sess,
		Sessions: sessions,
		APIBase:  cfg.APIBase,
	})
}

// Login runs the interactive login form and saves the session, replacing any
// prior one.
func Login(ctx context.Context, opts Options) error {
	_, client, sessions, closeLogs, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer closeLogs()

	sess, err := runLoginForm(ctx, client, sessions)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", sess.AdminName, sess.Department.String())
	return nil
}

// Logout clears the stored session.
func Logout(opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	sessions := session.NewStore(sessionPath(opts, cfg))
	if err := sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func bootstrap(opts Options) (config.Config, *api.Client, *session.Store, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	closeLogs, err := setupLogging(cfg.LogFile)
	if err != nil {
		return config.Config{}, nil, nil, nil, err
	}

	client, err := api.NewClient(cfg.APIBase, cfg.Timeout)
	if err != nil {
		closeLogs()
		return config.Config{}, nil, nil, nil, fmt.Errorf("init api client: %w", err)
	}

	return cfg, client, session.NewStore(sessionPath(opts, cfg)), closeLogs, nil
}

func sessionPath(opts Options, cfg config.Config) string {
	if strings.TrimSpace(opts.SessionPath) != "" {
		return opts.SessionPath
	}
	return cfg.SessionFile
}

// setupLogging routes the default logger to the configured file. The TUI
// owns the terminal, so nothing may write to stdout or stderr while it runs.
func setupLogging(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		Prefix:          "manifest",
	})
	log.SetDefault(logger)
	return func() { _ = file.Close() }, nil
}
