package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shoplane/storefront/internal/app/domain/user"
	"github.com/shoplane/storefront/internal/app/services/auth"
	"github.com/shoplane/storefront/internal/app/services/cartsvc"
	"github.com/shoplane/storefront/internal/app/services/catalogsvc"
	ordersvc "github.com/shoplane/storefront/internal/app/services/orders"
	userssvc "github.com/shoplane/storefront/internal/app/services/users"
	"github.com/shoplane/storefront/internal/app/storage"
	"github.com/shoplane/storefront/internal/app/storage/memory"
	"github.com/shoplane/storefront/internal/app/system"
	"github.com/shoplane/storefront/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users    storage.UserStore
	Products storage.ProductStore
	Carts    storage.CartStore
	Orders   storage.OrderStore
}

// Options tunes application construction.
type Options struct {
	JWTSecret   string
	TokenTTL    time.Duration
	CatalogFile string

	// SkipSeed leaves the stores empty; used by tests that seed their own data.
	SkipSeed bool
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Auth    *auth.Service
	Users   *userssvc.Service
	Catalog *catalogsvc.Service
	Cart    *cartsvc.Service
	Orders  *ordersvc.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Products == nil {
		stores.Products = mem
	}
	if stores.Carts == nil {
		stores.Carts = mem
	}
	if stores.Orders == nil {
		stores.Orders = mem
	}

	manager := system.NewManager()

	tokens := auth.NewTokenMaker(opts.JWTSecret, opts.TokenTTL)
	authService := auth.New(stores.Users, tokens, log)
	usersService := userssvc.New(stores.Users, log)
	catalogService := catalogsvc.New(stores.Products, log)
	cartService := cartsvc.New(stores.Carts, stores.Products, log)
	orderService := ordersvc.New(stores.Orders, log)

	for _, name := range []string{"auth", "users", "catalog", "cart"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	notifier := ordersvc.NewNotifier(orderService, log)
	if err := manager.Register(notifier); err != nil {
		return nil, fmt.Errorf("register %s: %w", notifier.Name(), err)
	}

	application := &Application{
		manager: manager,
		log:     log,
		Auth:    authService,
		Users:   usersService,
		Catalog: catalogService,
		Cart:    cartService,
		Orders:  orderService,
	}

	if !opts.SkipSeed {
		if err := application.seed(context.Background(), opts.CatalogFile); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	return application, nil
}

// seed fills the stores with the stock catalog and the default admin
// account so a fresh process is usable immediately.
func (a *Application) seed(ctx context.Context, catalogFile string) error {
	if err := a.Catalog.Seed(ctx, catalogFile); err != nil {
		return err
	}

	_, err := a.Users.Create(ctx, "Admin User", "admin@example.com", "password123", user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	a.log.Info("default admin user seeded")
	return nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
