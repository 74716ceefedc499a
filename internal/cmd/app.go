package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"shopdesk/internal/account"
	"shopdesk/internal/appointments"
	"shopdesk/internal/backend"
	"shopdesk/internal/catalog"
	"shopdesk/internal/config"
	"shopdesk/internal/models"
	"shopdesk/internal/projects"
	"shopdesk/internal/recovery"
	"shopdesk/internal/session"
	"shopdesk/internal/siteinfo"
	"shopdesk/internal/stats"
	"shopdesk/internal/validation"
)

// app wires the services shared by every command.
type app struct {
	cfg *config.Config
	log *slog.Logger
	val *validation.Validator

	client       *backend.Client
	store        *session.Store
	sessions     *session.Service
	accounts     *account.Service
	recovery     *recovery.Flow
	appointments *appointments.Service
	projects     *projects.Service
	catalog      *catalog.Service
	siteinfo     *siteinfo.Service
	stats        *stats.Service
}

func newApp(logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	var opts []backend.Option
	if cfg.Backend.Timeout > 0 {
		opts = append(opts, backend.WithTimeout(cfg.Backend.Timeout))
	}
	client, err := backend.New(cfg.Backend.BaseURL, opts...)
	if err != nil {
		return nil, err
	}

	val := validation.New()
	store := session.NewStore()
	return &app{
		cfg:          cfg,
		log:          logger,
		val:          val,
		client:       client,
		store:        store,
		sessions:     session.NewService(client, store, val, logger),
		accounts:     account.NewService(client, store, val, logger),
		recovery:     recovery.NewFlow(client, val, logger),
		appointments: appointments.NewService(client, val, cfg.Timezone, logger),
		projects:     projects.NewService(client, val, cfg.Timezone, logger),
		catalog:      catalog.NewService(client, val, logger),
		siteinfo:     siteinfo.NewService(client, val, logger),
		stats:        stats.NewService(client, cfg.Timezone, logger),
	}, nil
}

// login signs in with the configured staff credentials.
func (a *app) login(ctx context.Context) (models.User, error) {
	creds := a.cfg.Credentials
	if creds.Email == "" || creds.Password == "" {
		return models.User{}, errors.New("credentials.email and credentials.password must be set (SHOPDESK_CREDENTIALS_EMAIL, SHOPDESK_CREDENTIALS_PASSWORD)")
	}
	user, err := a.sessions.Login(ctx, session.LoginForm{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}
	return user, nil
}

// confirm shows prompt and waits for y/N on in. --yes answers for the user.
func confirm(in io.Reader, out io.Writer, prompt models.Prompt) (bool, error) {
	if assumeYes {
		return true, nil
	}
	fmt.Fprintf(out, "%s\n%s [y/N]: ", prompt.Title, prompt.Message)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
