package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/http/api"
	"github.com/xy-planning-network/storefront/http/middleware"
	"github.com/xy-planning-network/storefront/http/resp"
	"github.com/xy-planning-network/storefront/http/router"
	"github.com/xy-planning-network/storefront/http/template"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/postgres"
	"github.com/xy-planning-network/storefront/storage"
)

const (
	// Base path defaults
	baseEnvVar = "BASE"

	// Catalog defaults
	catalogSourceEnvVar = "CATALOG_SOURCE"
	catalogSeedEnvVar   = "CATALOG_SEED"
	stubSource          = "stub"
	postgresSource      = "postgres"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Database defaults
	dbHostEnvVar     = "DATABASE_HOST"
	defaultDBHost    = "localhost"
	dbNameEnvVar     = "DATABASE_NAME"
	dbPassEnvVar     = "DATABASE_PASSWORD"
	dbPortEnvVar     = "DATABASE_PORT"
	defaultDBPort    = "5432"
	dbSchema         = "public"
	dbSSLModeEnvVar  = "DATABASE_SSLMODE"
	defaultDBSSLMode = "prefer"
	dbURLEnvVar      = "DATABASE_URL"
	dbUserEnvVar     = "DATABASE_USER"

	// Client storage defaults
	redisURLEnvVar  = "REDIS_URL"
	redisPassEnvVar = "REDIS_PASSWORD"
	redisPrefix     = "storefront:"

	// HTML defaults
	shellTmpl       = "tmpl/index.html"
	maintenanceTmpl = "tmpl/maintenance.tmpl"
	staticDirEnvVar = "STATIC_DIR"
	defaultStatic   = "client/dist"

	// Web server defaults
	corsOriginEnvVar          = "CORS_ORIGIN"
	maintModeEnvVar           = "MAINTENANCE_MODE"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 10 * time.Second
)

// NewPostgresConfig constructs a *postgres.CxnConfig appropriate to the given environment.
// Confer the DATABASE env vars for usage.
func NewPostgresConfig(env storefront.Environment) *postgres.CxnConfig {
	if url := os.Getenv(dbURLEnvVar); url != "" {
		return &postgres.CxnConfig{IsTestDB: env.IsTesting(), URL: url}
	}

	return &postgres.CxnConfig{
		Host:     storefront.EnvVarOrString(dbHostEnvVar, defaultDBHost),
		IsTestDB: env.IsTesting(),
		Name:     os.Getenv(dbNameEnvVar),
		Password: os.Getenv(dbPassEnvVar),
		Port:     storefront.EnvVarOrString(dbPortEnvVar, defaultDBPort),
		SSLMode:  storefront.EnvVarOrString(dbSSLModeEnvVar, defaultDBSSLMode),
		User:     os.Getenv(dbUserEnvVar),
	}
}

// defaultLogger constructs a [logger.Logger] configured for use in the application.
func defaultLogger(env storefront.Environment) logger.Logger {
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(storefront.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo)),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultCatalog constructs the catalog.Service products are read from.
//
// Postgres backs the catalog unless CATALOG_SOURCE is "stub",
// or it is unset and the environment allows for stubbed services.
// A Postgres catalog is migrated before use,
// and seeded with catalog.DefaultProducts when CATALOG_SEED is true.
func defaultCatalog(ctx context.Context, env storefront.Environment, l logger.Logger) (catalog.Service, error) {
	source := storefront.EnvVarOrString(catalogSourceEnvVar, "")
	if source == "" {
		source = postgresSource
		if env.CanUseServiceStub() {
			source = stubSource
		}
	}

	switch source {
	case stubSource:
		l.Info("using stubbed catalog", nil)
		return catalog.NewStub(), nil

	case postgresSource:
		db, err := postgres.Connect(NewPostgresConfig(env), env)
		if err != nil {
			return nil, err
		}

		if err := postgres.MigrateUp(db, dbSchema, catalog.Migrations); err != nil {
			return nil, err
		}

		if storefront.EnvVarOrBool(catalogSeedEnvVar, false) {
			if err := catalog.Seed(ctx, db, catalog.DefaultProducts()); err != nil {
				return nil, err
			}
		}

		l.Info("using postgres catalog", nil)
		return catalog.NewPostgres(db), nil

	default:
		return nil, fmt.Errorf("%w: unknown %s %q", storefront.ErrNotValid, catalogSourceEnvVar, source)
	}
}

// defaultMedium constructs the storage.Medium client storage is kept in:
// Redis when REDIS_URL is set, memory otherwise.
func defaultMedium(ctx context.Context, l logger.Logger) (storage.Medium, error) {
	url := os.Getenv(redisURLEnvVar)
	if url == "" {
		l.Debug("using in memory client storage", nil)
		return storage.NewMemory(), nil
	}

	client, err := storage.NewRedisClient(url, os.Getenv(redisPassEnvVar))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot reach redis: %w", err)
	}

	l.Info("using redis client storage", nil)
	return storage.NewRedis(client, redisPrefix, storage.DefaultTTL), nil
}

// defaultParser constructs a template.Parser to be used
// for rendering the page shell and the pages themselves.
//
// defaultParser makes available these functions in an HTML template:
//
//   - "assetUri"
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
//   - "tags"
func defaultParser(env storefront.Environment, base string, static fs.FS) template.Parser {
	return template.NewParser(
		template.WithFn(template.Env(env)),
		template.WithFn("isDevelopment", env.IsDevelopment),
		template.WithFn("isProduction", env.IsProduction),
		template.WithFn(template.Tags(template.TagPacker(env, base, static))),
		template.WithFn(template.Assets(template.AssetURI(env, base, static))),
	)
}

// defaultMiddlewares lists the middlewares every request passes through, in order.
func defaultMiddlewares(env storefront.Environment, l logger.Logger) []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RateLimit(middleware.NewVisitors()),
	}

	if env.IsProduction() || env.IsStaging() {
		mws = append(mws, middleware.ForceHTTPS(env))
	}

	return append(mws,
		middleware.InjectIPAddress(),
		middleware.RequestID(),
		middleware.LogRequest(l),
		middleware.CORS(os.Getenv(corsOriginEnvVar)),
		middleware.Compress(),
	)
}

// defaultRouter constructs the [*router.Router] the web server uses:
// client assets, the JSON catalog endpoints,
// a redirect from the bare base path to its trailing slash form,
// and server-side rendered pages for every other GET request.
func defaultRouter(
	env storefront.Environment,
	base string,
	l logger.Logger,
	static fs.FS,
	responder *resp.Responder,
	svc catalog.Service,
	pages http.HandlerFunc,
) *router.Router {
	r := router.New(env, base, middleware.LogRequest(l))
	r.OnEveryRequest(defaultMiddlewares(env, l)...)

	if assets, err := fs.Sub(static, "assets"); err == nil {
		r.Static("/assets/", assets)
	}

	r.Subrouter("/api").HandleRoutes(api.New(svc, responder).Routes())
	r.HandleNotFound(pages)
	r.HandleBase(baseRedirect(responder))
	r.CatchAll(pages)

	return r
}

// baseRedirect permanently redirects the bare base path to the root page,
// carrying over the request's query.
// Repeated query parameters keep their last value, as pages read them.
func baseRedirect(responder *resp.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := []resp.Fn{resp.Url(r.URL.Path + "/"), resp.Code(http.StatusMovedPermanently)}
		for key, vals := range r.URL.Query() {
			opts = append(opts, resp.Param(key, vals[len(vals)-1]))
		}

		if err := responder.Redirect(w, r, opts...); err != nil {
			responder.Err(w, r, err)
		}
	}
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := storefront.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  storefront.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  storefront.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: storefront.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}

// MaintModeHandler responds to every request with the maintenance page
// and a 503 status, asking clients to retry in ten minutes.
func MaintModeHandler(p template.Parser, l logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "600")

		tmpl, err := p.Parse(maintenanceTmpl)
		if err != nil {
			l.Error("cannot parse maintenance page", &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := tmpl.Execute(w, nil); err != nil {
			l.Error("cannot render maintenance page", &logger.LogContext{Error: err, Request: r})
		}
	}
}
