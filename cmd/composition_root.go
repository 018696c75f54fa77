package cmd

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gasexpress/internal/adapters/out/cloudsync"
	"gasexpress/internal/adapters/out/geo"
	"gasexpress/internal/adapters/out/positioncache"
	"gasexpress/internal/adapters/out/postgres"
	"gasexpress/internal/adapters/out/postgres/tenantrepo"
	"gasexpress/internal/core/application/usecases/commands"
	"gasexpress/internal/core/application/usecases/queries"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/services"
	"gasexpress/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
// It is the single place that knows concrete implementations.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	tenantRepo     ports.TenantRepository
	geocoder       ports.Geocoder
	positionCache  ports.PositionCache
	dispatcher     services.Dispatcher
	publisher      *cloudsync.KafkaSnapshotPublisher
	syncer         *cloudsync.DebouncedSyncer
	fallbackCenter kernel.Coordinate
	logger         *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration.
// The fallback center defaults to São Paulo when the config values
// are absent or unparseable.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) *CompositionRoot {
	fallbackCenter := parseCenter(configs, logger)

	publisher := cloudsync.NewKafkaSnapshotPublisher(
		strings.Split(configs.KafkaBrokers, ","),
		configs.KafkaSnapshotTopic,
	)
	syncer := cloudsync.NewDebouncedSyncer(
		cloudsync.NewGormSnapshotLoader(gormDB),
		publisher,
		parseDebounce(configs.SyncDebounce),
		logger,
	)

	return &CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		tenantRepo:     tenantrepo.NewGormTenantRepository(gormDB),
		geocoder:       geo.NewNominatimGeocoder(configs.GeocoderBaseURL, fallbackCenter, logger),
		positionCache:  positioncache.NewRedisPositionCache(redisClient, positioncache.DefaultTTL),
		dispatcher:     services.NewDispatcher(fallbackCenter),
		publisher:      publisher,
		syncer:         syncer,
		fallbackCenter: fallbackCenter,
		logger:         logger,
	}
}

// Close flushes pending snapshots and releases the broker connection.
func (c *CompositionRoot) Close() error {
	c.syncer.Close()
	return c.publisher.Close()
}

// TenantRepository exposes the tenant registry for background jobs.
func (c *CompositionRoot) TenantRepository() ports.TenantRepository {
	return c.tenantRepo
}

// StateSyncer exposes the debounced cloud syncer.
func (c *CompositionRoot) StateSyncer() ports.StateSyncer {
	return c.syncer
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.geocoder, &c.dispatcher, c.syncer)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewChangeOrderStatusCommandHandler(f, c.syncer)
	return &h
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() *commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateDriverCommandHandler(f, c.syncer)
	return &h
}

func (c *CompositionRoot) CreateSetDriverShiftCommandHandler() *commands.SetDriverShiftCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewSetDriverShiftCommandHandler(f, c.syncer)
	return &h
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() *commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateProductCommandHandler(f, c.syncer)
	return &h
}

func (c *CompositionRoot) CreateMoveDriversCommandHandler() *commands.MoveDriversCommandHandler {
	var f commands.MovementUoWFactory = FuncMovementUoWFactory(func() commands.MovementUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewMoveDriversCommandHandler(
		f, c.tenantRepo, c.positionCache, c.syncer,
		c.fallbackCenter, commands.DefaultMovementStep, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockProductsQueryHandler() queries.GetLowStockProductsQueryHandler {
	return queries.NewGetLowStockProductsQueryHandler(c.gormDB)
}

func parseCenter(configs Config, logger *slog.Logger) kernel.Coordinate {
	lat, latErr := strconv.ParseFloat(configs.DefaultCenterLat, 64)
	lng, lngErr := strconv.ParseFloat(configs.DefaultCenterLng, 64)

	if latErr == nil && lngErr == nil {
		if center, err := kernel.NewCoordinate(lat, lng); err == nil {
			return center
		}
	}

	logger.Warn("Invalid default center in config, using São Paulo",
		"lat", configs.DefaultCenterLat, "lng", configs.DefaultCenterLng)

	center, _ := kernel.NewCoordinate(-23.5505, -46.6333)
	return center
}

func parseDebounce(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return cloudsync.DefaultDebounce
	}
	return d
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncMovementUoWFactory func() commands.MovementUoW

func (f FuncMovementUoWFactory) Create() commands.MovementUoW {
	return f()
}
