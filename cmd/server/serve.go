package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"quoteboard/internal/handlers"
	"quoteboard/internal/watch"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "address to listen on")
	cmd.Flags().String("env", "production", "environment: production, development or test")
	cmd.Flags().String("data-dir", "./data", "directory holding posts.json and contacts.json")
	cmd.Flags().String("static-dir", "./web/static", "directory served under /static/")
	cmd.Flags().Bool("watch", false, "log changes made to the data files by other processes")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	for _, w := range cfg.Warnings() {
		a.log.Warn(ctx, nil, w)
	}

	posts, contacts, err := a.repositories(ctx)
	if err != nil {
		return err
	}

	if cfg.Data.Watch {
		w, err := watch.New(cfg.Data.Dir, []string{cfg.Data.PostsFile, cfg.Data.ContactsFile},
			watch.LogChanges(a.log.WithComponent("watch")), a.log)
		if err != nil {
			a.log.Warn(ctx, err, "data watcher disabled")
		} else {
			go func() { _ = w.Run(ctx) }()
		}
	}

	h := handlers.New(posts, contacts, a.log, cfg.IsProduction())
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: h.Router(handlers.RouterConfig{
			StaticDir:     cfg.Server.StaticDir,
			SessionName:   cfg.Session.Name,
			SessionSecret: cfg.Session.Secret,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "listening", "addr", cfg.Server.Addr, "environment", cfg.Server.Environment, "data_dir", cfg.Data.Dir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
