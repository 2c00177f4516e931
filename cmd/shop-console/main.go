package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/pribylovaa/go-shop-console/internal/cache"
	"github.com/pribylovaa/go-shop-console/internal/client"
	"github.com/pribylovaa/go-shop-console/internal/config"
	apierrors "github.com/pribylovaa/go-shop-console/internal/errors"
	"github.com/pribylovaa/go-shop-console/internal/export"
	"github.com/pribylovaa/go-shop-console/internal/models"
	"github.com/pribylovaa/go-shop-console/internal/pkg/log"
	"github.com/pribylovaa/go-shop-console/internal/session"
	"github.com/pribylovaa/go-shop-console/internal/store"
	"github.com/pribylovaa/go-shop-console/internal/tui"
	"github.com/pribylovaa/go-shop-console/internal/watch"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := log.Setup(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting shop-console", "env", cfg.Env, "api", cfg.API.BaseURL)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	rootCtx = log.Into(rootCtx, lg)

	statePath, err := cfg.StatePath()
	if err != nil {
		lg.Error("state_path_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	state, err := store.OpenFile(statePath)
	if err != nil {
		lg.Error("state_open_failed", slog.String("path", statePath), slog.String("err", err.Error()))
		os.Exit(1)
	}

	sess := session.New(cfg.API.BaseURL, state, cfg.API.Timeout)

	if !sess.Authenticated() {
		if err := promptLogin(rootCtx, sess); err != nil {
			lg.Error("login_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	user, err := ensureUser(rootCtx, sess, func() error {
		return promptLogin(rootCtx, sess)
	})
	if err != nil {
		lg.Error("me_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	lg.Info("session_ready", slog.String("role", string(user.Role)))

	api := client.New(sess)
	dataCache := cache.New(cfg.Watch.Invalidate)
	exporter := export.New(cfg.Export.Dir, export.WithCurrency(cfg.Export.Currency))

	app := tui.NewApp(rootCtx, api, exporter, state, dataCache, cfg.Export.Currency)

	watcher := watch.New(api.Products(), dataCache, sess.Authenticated, cfg.Watch.Invalidate, cfg.Watch.LowStock)
	watcher.OnLowStock = func(products []models.Product) {
		app.Notify(fmt.Sprintf("%d products are running low on stock", len(products)))
	}

	go func() {
		_ = watcher.Run(rootCtx)
	}()

	go func() {
		<-rootCtx.Done()
		app.Stop()
	}()

	if err := app.Run(); err != nil {
		lg.Error("tui_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	lg.Info("shop-console stopped")
}

// ensureUser возвращает текущего пользователя. Протухшая сохранённая
// сессия (refresh не удался, хранилище уже очищено) — не фатальный сбой:
// пользователь заново логинится в этом же запуске.
func ensureUser(ctx context.Context, sess *session.Session, login func() error) (*models.User, error) {
	user, err := sess.Me(ctx)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, apierrors.ErrUnauthenticated) {
		return nil, err
	}

	if lerr := login(); lerr != nil {
		return nil, lerr
	}

	return sess.Me(ctx)
}

// promptLogin спрашивает учётные данные в терминале; пароль без эха.
func promptLogin(ctx context.Context, sess *session.Session) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	return sess.Login(ctx, email, string(raw))
}
