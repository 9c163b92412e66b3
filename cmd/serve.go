package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asmit/lexiq/internal/httpapi"
	"github.com/asmit/lexiq/internal/llm"
	"github.com/asmit/lexiq/internal/quiz"
	"github.com/asmit/lexiq/internal/quizgen"
	"github.com/asmit/lexiq/internal/store"
)

var (
	serveAddr    string
	serveLength  int
	serveTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz as an HTTP service",
	Long: `Serve exposes the quiz over HTTP: GET /question, POST /answer,
GET /result, and POST /restart. Sessions are tracked with a cookie and
held in memory, or in Redis when LEXIQ_REDIS_ADDR is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultAddr(), "Listen address")
	serveCmd.Flags().IntVar(&serveLength, "questions", quiz.DefaultLength, "Number of questions per session")
	serveCmd.Flags().DurationVar(&serveTimeout, "session-ttl", 30*time.Minute, "Idle session lifetime")
}

func defaultAddr() string {
	if addr := os.Getenv("LEXIQ_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, log, st.EventRepo())
	if err != nil {
		log.Warn("generation backend not configured, serving fallback questions", zap.Error(err))
		provider = llm.NewMockProvider()
	}

	assembler := quizgen.New(provider, quizgen.DefaultConfig(), log)
	engine := quiz.NewEngine(assembler, quiz.Config{Length: serveLength})

	sessions, err := newSessionStore(ctx, log)
	if err != nil {
		return err
	}

	server := httpapi.NewServer(engine, sessions, log)
	httpServer := &http.Server{
		Addr:              serveAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", serveAddr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newSessionStore picks Redis when LEXIQ_REDIS_ADDR is set, otherwise
// the in-process store.
func newSessionStore(ctx context.Context, log *zap.Logger) (httpapi.SessionStore, error) {
	addr := os.Getenv("LEXIQ_REDIS_ADDR")
	if addr == "" {
		return httpapi.NewMemorySessionStore(serveTimeout), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("LEXIQ_REDIS_PASSWORD"),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("using redis session store", zap.String("addr", addr))
	return httpapi.NewRedisSessionStore(client, serveTimeout), nil
}
