/*
Package ranger initializes and manages a storefront with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].

[*Ranger.Guide] begins the storefront's web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming a reverse proxy proxies requests to it.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown]
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a storefront through environment variables
and by passing [RangerOption] to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE: the path the storefront is served under, e.g.: /shop; default: none
  - CATALOG_SEED: whether to seed an empty Postgres catalog with the default products; default: false
  - CATALOG_SOURCE: where products are read from, "stub" or "postgres"; default: stub in development and testing, postgres otherwise
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the sslmode for connecting to the database; default: prefer
  - DATABASE_URL: the fully-qualified connection string for connecting to the database; replaces all other DATABASE_* env vars
  - DATABASE_USER: the user for authenticating a connection to the database
  - ENVIRONMENT: the environment the application is running in; cf. [storefront.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: whether every page responds with the maintenance page; default: false
  - PORT: the port the application should listen on; default: :3000
  - REDIS_PASSWORD: the password for authenticating with Redis
  - REDIS_URL: the URL of the Redis server client storage is kept in; default: in memory
  - SENTRY_DSN: the DSN errors and panics are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 10s
  - STATIC_DIR: the directory the client build is served from; default: client/dist
*/
package ranger
