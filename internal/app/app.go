package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/directory"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/distlog"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/distribution"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/document"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/escalationlevel"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/sequence"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/realtime"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/realtime/natspub"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/realtime/redispub"
	"github.com/heartmarshall/correspondence-backend/internal/config"
	documentsvc "github.com/heartmarshall/correspondence-backend/internal/service/document"
	"github.com/heartmarshall/correspondence-backend/internal/service/escalation"
	"github.com/heartmarshall/correspondence-backend/internal/service/notify"
	"github.com/heartmarshall/correspondence-backend/internal/service/numbering"
	"github.com/heartmarshall/correspondence-backend/internal/service/routing"
	"github.com/heartmarshall/correspondence-backend/internal/transport/rest"
)

// Pusher is the real-time transport selected by realtime.driver.
type Pusher interface {
	Push(ctx context.Context, userIDs []uuid.UUID, event string, payload any) error
	Ping(ctx context.Context) error
}

// App holds the wired components of one process.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool
	Pusher Pusher

	Documents     *documentsvc.Service
	Routing       *routing.Service
	Notifications *notify.Service
	Escalation    *escalation.Service
	Policy        *escalation.PolicyCache

	closers []func() error
}

// New connects to the database and the real-time transport and wires every
// service. The caller must Close the returned App.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	fallback, err := config.PolicyFromLevels(cfg.Escalation.EffectiveLevels())
	if err != nil {
		return nil, fmt.Errorf("escalation levels: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Log: log, Pool: pool}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	a.Pusher, err = a.newPusher(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	txm := postgres.NewTxManager(pool)
	docRepo := document.New(pool)
	distRepo := distribution.New(pool)
	logRepo := distlog.New(pool)
	dirRepo := directory.New(pool)
	auditRepo := audit.New(pool)

	allocator := numbering.NewAllocator(log, sequence.New(pool), txm, cfg.Numbering)
	a.Documents = documentsvc.NewService(log, docRepo, allocator, auditRepo, cfg.Numbering)
	a.Routing = routing.NewService(log, distRepo, logRepo, dirRepo, auditRepo, txm)
	a.Notifications = notify.NewService(log, notification.New(pool), a.Pusher, cfg.Realtime)
	a.Policy = escalation.NewPolicyCache(log, escalationlevel.New(pool), fallback, cfg.Escalation.PolicyCacheTTL)
	a.Escalation = escalation.NewService(log, distRepo, logRepo, dirRepo, auditRepo,
		a.Notifications, a.Policy, txm, cfg.Escalation)

	return a, nil
}

func (a *App) newPusher(ctx context.Context) (Pusher, error) {
	switch a.Config.Realtime.Driver {
	case config.RealtimeDriverRedis:
		client := redispub.NewClient(a.Config.Redis)
		p := redispub.New(client, a.Config.Realtime.Prefix)
		a.closers = append(a.closers, p.Close)
		if err := p.Ping(ctx); err != nil {
			// Redis may come up later; pushes fail as transient errors until then.
			a.Log.WarnContext(ctx, "redis unreachable at startup", slog.String("error", err.Error()))
		}
		return p, nil
	case config.RealtimeDriverNATS:
		conn, err := natspub.Connect(a.Config.NATS)
		if err != nil {
			return nil, err
		}
		p := natspub.New(conn, a.Config.Realtime.Prefix)
		a.closers = append(a.closers, p.Close)
		return p, nil
	default:
		return realtime.NewLogPusher(a.Log), nil
	}
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Log.Warn("close failed", slog.String("error", err.Error()))
		}
	}
	a.closers = nil
}

// Run is the server entry point. It loads configuration, wires the
// application and serves the health endpoint while the escalation scheduler
// fires, until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("realtime_driver", cfg.Realtime.Driver),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

// Serve runs the health server and, if enabled, the escalation scheduler.
// It returns after ctx is cancelled and both have shut down.
func (a *App) Serve(ctx context.Context) error {
	health := rest.NewHealthHandler(BuildVersion(),
		rest.Check{Name: "database", Pinger: a.Pool},
		rest.Check{Name: "realtime", Pinger: a.Pusher},
	)
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.Config.Server.Host, strconv.Itoa(a.Config.Server.Port)),
		Handler:      rest.NewRouter(a.Log, health),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	var sched *escalation.Scheduler
	if a.Config.Escalation.Enabled {
		var err error
		sched, err = escalation.NewScheduler(a.Log, a.Escalation, a.Config.Escalation.Schedule)
		if err != nil {
			return err
		}
	} else {
		a.Log.InfoContext(ctx, "escalation scheduler disabled")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.InfoContext(gctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if sched != nil {
		// A scan in flight at shutdown is allowed to finish within the shutdown timeout.
		sched.Start(context.WithoutCancel(gctx))
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if sched != nil {
			if err := sched.Stop(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
			}
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
		a.Log.Info("shutdown complete", slog.Duration("timeout", a.Config.Server.ShutdownTimeout))
		return errors.Join(errs...)
	})

	return g.Wait()
}

// ScanOnce runs a single escalation scan at now.
func (a *App) ScanOnce(ctx context.Context, now time.Time) (escalation.ScanResult, error) {
	return a.Escalation.RunScan(ctx, now)
}
