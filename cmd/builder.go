package cmd

import (
	"context"
	"net/http"

	"ordering/api"
	apicatalog "ordering/api/catalog"
	"ordering/api/health"
	apiorder "ordering/api/order"
	catalogapp "ordering/application/catalog"
	orderapp "ordering/application/order"
	"ordering/config"
	"ordering/domain/category"
	"ordering/domain/order"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/domain/tag"
	"ordering/infrastructure/persistence/memory"
	"ordering/infrastructure/persistence/mysql"
	"ordering/infrastructure/persistence/retry"
	"ordering/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg          *config.Config
	controllers  []api.ControllerRegister
	middlewares  []api.MiddlewareRegister
	customRoutes []api.Route
	memoryStore  *memory.Store
}

// backend is the set of repositories one persistence adapter provides
type backend struct {
	products   product.Repository
	categories category.Repository
	tags       tag.Repository
	orders     order.Repository
	uowFactory shared.UnitOfWorkFactory
	pinger     health.Pinger
	cleanup    []func() error
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:          cfg,
		controllers:  []api.ControllerRegister{},
		middlewares:  []api.MiddlewareRegister{},
		customRoutes: []api.Route{},
	}
}

// WithController adds a controller next to the default ones
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// WithMemoryStore forces the in-memory adapter backed by store
func (b *AppBuilder) WithMemoryStore(store *memory.Store) *AppBuilder {
	b.memoryStore = store
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build() (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	be, err := b.initBackend()
	if err != nil {
		return nil, err
	}

	productService := catalogapp.NewProductService(be.products, be.categories, be.uowFactory)
	categoryService := catalogapp.NewCategoryService(be.categories, be.products, be.uowFactory)
	tagService := catalogapp.NewTagService(be.tags, be.products, be.uowFactory)
	orderService := orderapp.NewApplicationService(be.orders, be.products, be.uowFactory)

	controllers := []api.ControllerRegister{
		health.NewController(b.cfg, be.pinger),
		apicatalog.NewProductController(productService),
		apicatalog.NewCategoryController(categoryService),
		apicatalog.NewTagController(tagService),
		apiorder.NewController(orderService),
	}
	controllers = append(controllers, b.controllers...)

	router := api.NewRouter(b.cfg, controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config:  b.cfg,
		router:  router,
		server:  server,
		cleanup: be.cleanup,
	}, nil
}

func (b *AppBuilder) initBackend() (*backend, error) {
	retryConfig := retry.FromAppConfig(b.cfg)

	if b.memoryStore != nil || b.cfg.Database.Type == "memory" {
		store := b.memoryStore
		if store == nil {
			store = memory.NewStore()
		}
		logger.Info("Using in-memory persistence layer")
		return &backend{
			products:   memory.NewProductRepository(store),
			categories: memory.NewCategoryRepository(store),
			tags:       memory.NewTagRepository(store),
			orders:     memory.NewOrderRepository(store),
			uowFactory: memory.NewUnitOfWorkFactory(store, retryConfig),
			pinger:     store,
		}, nil
	}

	logger.Info("Using MySQL/GORM persistence layer")

	db, closeDB, err := OpenMySQL(context.Background(), &b.cfg.Database)
	if err != nil {
		return nil, err
	}

	return &backend{
		products:   mysql.NewProductRepository(db),
		categories: mysql.NewCategoryRepository(db),
		tags:       mysql.NewTagRepository(db),
		orders:     mysql.NewOrderRepository(db),
		uowFactory: mysql.NewUnitOfWorkFactory(db, retryConfig),
		pinger: health.PingerFunc(func(ctx context.Context) error {
			return mysql.Ping(ctx, db)
		}),
		cleanup: []func() error{closeDB},
	}, nil
}
