package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/auth"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/database"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/http/handlers"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/http/router"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/mail"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/queue"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/worker"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/usecase"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the assignment notification worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override server.port")
}

func serve(ctx context.Context) error {
	pool, err := database.NewDBConnection(ctx, cfg.Database.URL, database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := database.NewUserRepository(pool)
	leadRepo := database.NewLeadRepository(pool)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	g, gctx := errgroup.WithContext(ctx)

	// Notifications are optional; without a broker uploads still work.
	var (
		publisher usecase.AssignmentPublisher
		broker    handlers.BrokerConn
	)
	if cfg.Queue.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.Queue.URL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()

		publisher = queue.NewProducer(rabbitMQ.Ch)
		broker = rabbitMQ.Conn

		if cfg.MailEnabled() {
			sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
			w := queue.NewWorker(rabbitMQ.Ch, sender)
			g.Go(func() error { return w.Start(gctx, queue.QueueName) })
		} else {
			zap.L().Warn("mail not configured, assignment messages will queue without a consumer")
		}
	} else {
		zap.L().Info("queue not configured, assignment notifications disabled")
	}

	janitor := worker.NewUploadJanitor(cfg.Upload.Dir)
	g.Go(func() error { return janitor.Start(gctx) })

	h := router.Handlers{
		Auth:   handlers.NewAuthHandler(usecase.NewLoginUseCase(userRepo, hasher, tokens)),
		Agents: handlers.NewAgentHandler(usecase.NewManageAgentsUseCase(userRepo, hasher)),
		Lists: handlers.NewListHandler(
			usecase.NewDistributeLeadsUseCase(userRepo, leadRepo, publisher, cfg.Upload.RollbackOnFailure),
			usecase.NewListLeadsUseCase(leadRepo),
			cfg.Upload.Dir,
			cfg.Upload.MaxBytes,
		),
		Health: handlers.NewHealthHandler(pool, broker, cfg.MailEnabled()),
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.New(router.Config{
			AllowedOrigins:     cfg.Server.AllowedOrigins,
			LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
			TrustProxy:         cfg.Server.TrustProxy,
		}, h, tokens, userRepo),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		zap.L().Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "http server")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		zap.L().Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
