package ranger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/http/resp"
	"github.com/xy-planning-network/storefront/http/router"
	"github.com/xy-planning-network/storefront/http/template"
	"github.com/xy-planning-network/storefront/hydrate"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/pages"
	sfrouter "github.com/xy-planning-network/storefront/router"
	"github.com/xy-planning-network/storefront/ssr"
	"github.com/xy-planning-network/storefront/storage"
	"github.com/xy-planning-network/storefront/store"
)

// CartStorageKey is the key the cart is kept under in client storage.
const CartStorageKey = "storefront-cart"

// A Ranger manages and exposes all components of a storefront to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	base     string
	catalog  catalog.Service
	ctx      context.Context
	cancel   context.CancelFunc
	env      storefront.Environment
	l        logger.Logger
	maint    bool
	medium   storage.Medium
	renderer *ssr.Renderer
	srv      *http.Server
	static   fs.FS
}

// New constructs a Ranger from the provided options.
// Components no option sets are built from environment variables.
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{
		base:  storefront.EnvVarOrBasePath(baseEnvVar, ""),
		env:   storefront.EnvVarOrEnv(environmentEnvVar, storefront.Development),
		maint: storefront.EnvVarOrBool(maintModeEnvVar, false),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", storefront.ErrBadConfig, err)
		}
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}
	r.ctx, r.cancel = context.WithCancel(r.ctx)

	var err error
	if r.catalog == nil {
		if r.catalog, err = defaultCatalog(r.ctx, r.env, r.l); err != nil {
			return nil, fmt.Errorf("%w: cannot set up catalog: %s", storefront.ErrBadConfig, err)
		}
	}

	if r.medium == nil {
		if r.medium, err = defaultMedium(r.ctx, r.l); err != nil {
			return nil, fmt.Errorf("%w: cannot set up client storage: %s", storefront.ErrBadConfig, err)
		}
	}

	if r.static == nil {
		r.static = os.DirFS(storefront.EnvVarOrString(staticDirEnvVar, defaultStatic))
	}

	p := defaultParser(r.env, r.base, r.static)
	ps, err := pages.New(r.catalog, p, r.base, r.l)
	if err != nil {
		return nil, err
	}

	r.renderer = ssr.New(
		ps.Routes(),
		ssr.WithBaseURL(r.base),
		ssr.WithLogger(r.l),
		ssr.WithNotFound(ps.NotFound),
	)

	shell, err := template.Shell(p, shellTmpl, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot set up page shell: %s", storefront.ErrBadConfig, err)
	}

	r.Responder = resp.NewResponder(
		resp.WithEnv(r.env),
		resp.WithLogger(r.l),
		resp.WithRenderer(r.renderer),
		resp.WithRootUrl(r.base+"/"),
		resp.WithShell(shell),
	)

	pageHandler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.Page(w, req)
	})
	if r.maint {
		r.l.Warn("maintenance mode is on", nil)
		pageHandler = MaintModeHandler(p, r.l)
	}

	r.Router = defaultRouter(r.env, r.base, r.l, r.static, r.Responder, r.catalog, pageHandler)

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}
	r.srv.Handler = r.Router

	return r, nil
}

func (r *Ranger) EmitCatalog() catalog.Service    { return r.catalog }
func (r *Ranger) EmitEnv() storefront.Environment { return r.env }
func (r *Ranger) EmitLogger() logger.Logger       { return r.l }
func (r *Ranger) EmitMedium() storage.Medium      { return r.medium }
func (r *Ranger) EmitRenderer() *ssr.Renderer     { return r.renderer }

// Client constructs the browser model of visitor for a page the storefront rendered,
// located at href.
// The returned *hydrate.Boot is ready to Run;
// the returned *hydrate.History navigates its router.
//
// Each visitor keeps their own cart in client storage.
// An empty visitor is given a new ID, and so starts with an empty cart.
func (r *Ranger) Client(visitor string, page []byte, href string) (*hydrate.Boot, *hydrate.History) {
	if visitor == "" {
		visitor = uuid.NewString()
	}

	h := hydrate.NewHistory(href)
	rt := r.renderer.Router(sfrouter.WithLocation(h), sfrouter.WithLogger(r.l))
	h.Attach(rt)

	products := store.NewProductStore()
	return &hydrate.Boot{
		Window:   hydrate.NewWindowFromHTML(page),
		Products: products,
		Cart:     store.NewCartStore(),
		Storage:  storage.New(CartStorageKey, storage.Scope(r.medium, visitor+":"), r.l),
		Router:   rt,
		Fetch:    hydrate.CatalogFetch(r.catalog, products),
		Logger:   r.l,
	}, h
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s%s", r.srv.Addr, r.base), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
			return
		}

		errCh <- nil
	}()

	select {
	case err := <-errCh:
		r.cancel()
		return err
	case <-r.ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	r.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	if err := r.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
