package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/personalplanner/planner/internal/auth"
	"github.com/personalplanner/planner/internal/config"
	"github.com/personalplanner/planner/internal/db"
	"github.com/personalplanner/planner/internal/middleware"
	"github.com/personalplanner/planner/internal/misc"
	"github.com/personalplanner/planner/internal/report"
	"github.com/personalplanner/planner/internal/reports"
	"github.com/personalplanner/planner/internal/source"
	"github.com/personalplanner/planner/internal/source/backend"
	"github.com/personalplanner/planner/internal/source/postgres"
	"github.com/personalplanner/planner/internal/telemetry/metrics"
	"github.com/personalplanner/planner/internal/telemetry/tracing"
)

const (
	DefaultTimezone = "America/Sao_Paulo"

	defaultReportRateLimitPerMin = 20
	logoutRateLimitPerMin        = 30
	// preview bundles are the largest bodies we accept
	maxRequestBodyBytes = 2 << 20
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config     *config.Config
	dbPool     *pgxpool.Pool // only set for the postgres data source
	dataSource source.Source
	composer   *report.Composer

	redisClient  *redis.Client
	tokenChecker auth.Checker
	sessions     *auth.TokenChecker

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	IdentityAPIKey          string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	location, err := LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "planner-service", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		redisClient:  rdb,
		otelShutdown: otelShutdown,
		composer: report.NewComposer(report.ComposerParams{
			Location: location,
		}),
	}

	var extraCollectors []prometheus.Collector
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			otelShutdown()
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		s.dbPool = dbPool
		s.dataSource = postgres.NewRepo(dbPool)
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	case config.DataSourceBackend:
		s.dataSource = backend.NewClient(backend.ClientParams{
			BaseURL:    cfg.BackendURL,
			HTTPClient: tracedHttpClient,
		})
	default:
		otelShutdown()
		return nil, fmt.Errorf("unknown data source: [%s]", cfg.DataSource)
	}
	log.Infof("using data source: [%s]", cfg.DataSource)

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("planner", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	sessionTTL := auth.DefaultTTL
	if cfg.SessionTTLMinutes > 0 {
		sessionTTL = time.Duration(cfg.SessionTTLMinutes) * time.Minute
	}
	s.sessions = auth.NewTokenChecker(
		sessionTTL,
		rdb,
		auth.NewIdentityClient(cfg.IdentityURL, params.IdentityAPIKey, tracedHttpClient),
	)
	s.tokenChecker = s.sessions

	return s, nil
}

// LoadLocation resolves the timezone used for report dates; empty means DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone [%s]: %w", name, err)
	}
	return location, nil
}

func (s *Server) routerSetup(rateLimiter middleware.RequestRateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("planner-router"))

	// a nil *auth.TokenChecker must stay a nil interface
	var sessions interface {
		Forget(ctx context.Context, token string) error
	}
	if s.sessions != nil {
		sessions = s.sessions
	}
	miscHandler := misc.NewHandler(s.versionInfo, sessions)
	miscHandler.SetupRoutes(r, rateLimiter, s.metricsManager, logoutRateLimitPerMin)

	reportsHandler := reports.NewHandler(reports.HandlerParams{
		Source:         s.dataSource,
		Composer:       s.composer,
		MetricsManager: s.metricsManager,
	})
	reportRateLimit := s.config.ReportRateLimitPerMin
	if reportRateLimit <= 0 {
		reportRateLimit = defaultReportRateLimitPerMin
	}
	reportsHandler.SetupRoutes(r, rateLimiter, reportRateLimit)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.tokenChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup(redis_rate.NewLimiter(s.redisClient))

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{Registry: s.promRegistry}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeOpenConnections.Add(1)
	case http.StateHijacked, http.StateClosed:
		s.metricsManager.GaugeOpenConnections.Add(-1)
	default:
		// do nothing
	}
}
