// Water Bar MCP server exposes branded email, email log and payment link tools through Model Context Protocol.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/waterbar-mcp/internal/auth"
	"github.com/hal9000y/waterbar-mcp/internal/config"
	"github.com/hal9000y/waterbar-mcp/internal/emaillog"
	"github.com/hal9000y/waterbar-mcp/internal/log"
	"github.com/hal9000y/waterbar-mcp/internal/resend"
	"github.com/hal9000y/waterbar-mcp/internal/stripe"
	"github.com/hal9000y/waterbar-mcp/internal/tool"
)

type emailLogStore interface {
	Append(ctx context.Context, entry emaillog.Entry) error
	List(ctx context.Context, limit int) ([]emaillog.Entry, error)
}

type paymentLinker interface {
	CreatePaymentLink(ctx context.Context, params stripe.PaymentLinkParams) (stripe.PaymentLink, error)
}

func main() {
	envFileParam := flag.String("env-file", "", "Path to env file")
	logFile := flag.String("log-file", "", "Path to log file, stderr when empty")
	httpAddr := flag.String("http-addr", "", "Also serve MCP over streamable HTTP on this addr, disabled when empty")

	flag.Parse()

	out, closeLog, err := log.Output(*logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(*envFileParam)
	if err != nil {
		slog.New(slog.NewJSONHandler(out, nil)).Error("config load failed", "error", err)
		closeLog()
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel, out)
	slog.SetDefault(logger)

	if code := run(cfg, *httpAddr, logger); code != 0 {
		closeLog()
		os.Exit(code)
	}
}

func run(cfg config.Config, httpAddr string, logger *slog.Logger) int {
	ctx := context.Background()

	mail := resend.NewClient(cfg.ResendAPIKey,
		resend.WithBaseURL(cfg.ResendBaseURL),
		resend.WithRateLimit(cfg.ResendRateLimit),
	)

	store, closeStore, err := newEmailLogStore(ctx, cfg)
	if err != nil {
		logger.Error("email log store init failed", "error", err)
		return 1
	}
	defer closeStore()

	var payments paymentLinker
	if cfg.PaymentsEnabled() {
		payments = stripe.NewClient(cfg.StripeSecretKey, cfg.StripeBaseURL, nil)
	}

	d, err := tool.NewDispatcher(mail, store, payments, cfg.EmailFrom, logger)
	if err != nil {
		logger.Error("dispatcher init failed", "error", err)
		return 1
	}
	server := tool.NewServer(d)

	logger.Info("Water Bar email MCP server starting",
		"resend_api_key", auth.Mask(cfg.ResendAPIKey),
		"supabase_url", cfg.SupabaseURL,
		"email_from", cfg.EmailFrom,
		"payments_enabled", cfg.PaymentsEnabled(),
		"direct_database", cfg.DatabaseURL != "",
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGTERM, syscall.SIGINT)

	var errHTTPCh <-chan error
	if httpAddr != "" {
		ln, err := net.Listen("tcp", httpAddr)
		if err != nil {
			logger.Error("net.Listen failed", "addr", httpAddr, "error", err)
			return 1
		}

		mux := http.NewServeMux()
		mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil))

		var stopHTTP func()
		stopHTTP, errHTTPCh = serveHTTP(&http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}, ln, logger)
		defer stopHTTP()
	}

	stopStdio, errStdioCh := serveStdio(server, logger)
	defer stopStdio()

	select {
	case err := <-errHTTPCh:
		logger.Error("http server stopped", "error", err)
		return 1
	case err := <-errStdioCh:
		// The client closing stdin ends Run with an error; that is a normal exit.
		logger.Info("stdio transport closed", "error", err)
	case <-shutdown:
		logger.Info("shutdown signal received")
	}

	return 0
}

func newEmailLogStore(ctx context.Context, cfg config.Config) (emailLogStore, func(), error) {
	if cfg.DatabaseURL == "" {
		return emaillog.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil), func() {}, nil
	}

	pg, err := emaillog.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("emaillog.NewPostgres failed: %w", err)
	}

	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("pg.EnsureSchema failed: %w", err)
	}

	return pg, pg.Close, nil
}

func serveStdio(srv *mcp.Server, logger *slog.Logger) (func(), <-chan error) {
	errStdioCh := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(errStdioCh)
		logger.Info("starting stdio transport")

		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			errStdioCh <- fmt.Errorf("srv.Run failed: %w", err)
		}
	}()

	return func() {
		cancel()

		<-errStdioCh
		logger.Info("stdio transport stopped")
	}, errStdioCh
}

func serveHTTP(srv *http.Server, ln net.Listener, logger *slog.Logger) (func(), <-chan error) {
	errHTTPCh := make(chan error, 1)
	go func() {
		defer close(errHTTPCh)

		logger.Info("starting http server", "addr", ln.Addr().String())

		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errHTTPCh <- fmt.Errorf("srv.Serve failed: %w", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("srv.Shutdown failed", "error", err)
		}

		<-errHTTPCh
		logger.Info("http server stopped")
	}, errHTTPCh
}
