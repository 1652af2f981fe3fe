package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/storage"
)

// A RangerOption configures a *Ranger under construction.
// Components a RangerOption leaves unset are built from defaults
// once every RangerOption has been applied.
type RangerOption func(rng *Ranger) error

// WithBase sets the path the storefront is served under,
// in place of the BASE env var.
func WithBase(base string) RangerOption {
	return func(rng *Ranger) error {
		rng.base = storefront.NormalizeBasePath(base)
		return nil
	}
}

// WithCatalog exposes the provided catalog.Service to the storefront,
// in place of the one CATALOG_SOURCE configures.
func WithCatalog(svc catalog.Service) RangerOption {
	return func(rng *Ranger) error {
		if svc == nil {
			return fmt.Errorf("%w: nil catalog", storefront.ErrBadConfig)
		}

		rng.catalog = svc
		return nil
	}
}

// WithContext sets the context.Context the storefront runs in.
// The web server's requests derive from it.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		rng.ctx = ctx
		return nil
	}
}

// WithEnv sets the Environment in place of the ENVIRONMENT env var.
func WithEnv(env storefront.Environment) RangerOption {
	return func(rng *Ranger) error {
		if err := env.Valid(); err != nil {
			return fmt.Errorf("%w: environment %q", err, env)
		}

		rng.env = env
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the storefront.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithMaintenanceMode sets whether every page responds with the maintenance page,
// in place of the MAINTENANCE_MODE env var.
func WithMaintenanceMode(on bool) RangerOption {
	return func(rng *Ranger) error {
		rng.maint = on
		return nil
	}
}

// WithMedium sets the storage.Medium client storage is kept in,
// in place of the one REDIS_URL configures.
func WithMedium(m storage.Medium) RangerOption {
	return func(rng *Ranger) error {
		rng.medium = m
		return nil
	}
}

// WithServer exposes the *http.Server to the storefront.
// Its Handler is replaced by the storefront's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}

// WithStatic sets the filesystem the client build is served from,
// in place of the STATIC_DIR env var.
func WithStatic(static fs.FS) RangerOption {
	return func(rng *Ranger) error {
		rng.static = static
		return nil
	}
}
