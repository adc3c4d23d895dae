package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/repuestos-api/internal/application/auth"
	"github.com/jhoicas/repuestos-api/internal/application/delivery"
	"github.com/jhoicas/repuestos-api/internal/application/document"
	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/application/quote"
	"github.com/jhoicas/repuestos-api/internal/application/report"
	"github.com/jhoicas/repuestos-api/internal/application/usecase"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/kv"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/repuestos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/repuestos-api/pkg/config"
	"github.com/jhoicas/repuestos-api/pkg/logger"
	"github.com/jhoicas/repuestos-api/pkg/metrics"
)

// relational repositorios de inventario y documentos según STORE_DRIVER.
type relational struct {
	txRunner   inventory.TxRunner
	parts      repository.PartRepository
	warehouses repository.WarehouseRepository
	quotes     repository.QuoteRepository
	deliveries repository.DeliveryRepository
	movements  repository.StockMovementRepository
	ping       func(ctx context.Context) error
	close      func()
}

// keyValue almacenamiento clave-valor y candados según KV_DRIVER.
type keyValue struct {
	store  kv.Store
	locker kv.Locker
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("kv", cfg.KV.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	rel, err := openRelational(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de inventario")
	}
	defer rel.close()

	kvs, err := openKeyValue(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento clave-valor")
	}
	defer kvs.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	userRepo := kv.NewUserRepository(kvs.store, kvs.locker)
	sellerRepo := kv.NewSellerRepository(kvs.store, kvs.locker)
	clientRepo := kv.NewClientRepository(kvs.store, kvs.locker)
	counter := kv.NewDocumentCounter(kvs.store, cfg.KV.QuoteStart)

	ledger := inventory.NewLedger(rel.txRunner, inventory.LedgerConfig{StrictLookup: cfg.Policy.StrictLookup}, log, m)
	quoteUC := quote.NewUseCase(quote.Deps{
		TxRunner:   rel.txRunner,
		Ledger:     ledger,
		Quotes:     rel.quotes,
		Deliveries: rel.deliveries,
		Parts:      rel.parts,
		Sellers:    sellerRepo,
		Counter:    counter,
		Locker:     kvs.locker,
		Logger:     log,
		Metrics:    m,
	}, quote.Policy{
		AllowReapproval:      cfg.Policy.AllowReapproval,
		RestoreStockOnDelete: cfg.Policy.RestoreStockOnDelete,
	})

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if cfg.Seed.AdminPassword != "" {
		created, err := authUC.SeedAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Seed.AdminUsername).Msg("administrador inicial creado")
		}
	}

	pdfGenerator := infrapdf.NewMarotoGenerator(cfg.App.CompanyName)
	documentUC := document.NewUseCase(rel.quotes, rel.deliveries, sellerRepo, rel.warehouses, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Repuestos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "service": cfg.App.Name}
		if err := rel.ping(c.UserContext()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
		}
		if err := kvs.store.Ping(c.UserContext()); err != nil {
			status["status"] = "degraded"
			status["kv"] = err.Error()
		}
		if status["status"] != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		return c.JSON(status)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Access:        usecase.NewAccessService(userRepo),
		UserUC:        usecase.NewUserUseCase(userRepo),
		WarehouseUC:   usecase.NewWarehouseUseCase(rel.warehouses),
		PartUC:        usecase.NewPartUseCase(rel.parts, rel.warehouses, rel.movements, rel.txRunner, ledger),
		Replenishment: inventory.NewReplenishmentUseCase(rel.parts, rel.movements),
		QuoteUC:       quoteUC,
		DeliveryUC:    delivery.NewUseCase(rel.deliveries, quoteUC, log),
		DocumentUC:    documentUC,
		ReportUC:      report.NewUseCase(rel.quotes, rel.deliveries, rel.parts, rel.warehouses, sellerRepo, log),
		ClientUC:      usecase.NewClientUseCase(clientRepo),
		SellerUC:      usecase.NewSellerUseCase(sellerRepo),
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRelational abre PostgreSQL (aplicando migraciones si está configurado) o el almacenamiento en memoria.
func openRelational(ctx context.Context, cfg *config.Config, log *logger.Logger) (*relational, error) {
	if cfg.Store.Driver == config.DriverMemory {
		store := memory.NewStore()
		store.SeedWarehouses(memory.DefaultWarehouses()...)
		if cfg.Store.SeedDemo {
			store.SeedParts(memory.DemoParts(time.Now())...)
		}
		log.Warn().Msg("inventario en memoria: los datos se pierden al reiniciar")
		return &relational{
			txRunner:   store,
			parts:      store.Parts(),
			warehouses: store.Warehouses(),
			quotes:     store.Quotes(),
			deliveries: store.Deliveries(),
			movements:  store.Movements(),
			ping:       func(context.Context) error { return nil },
			close:      func() {},
		}, nil
	}

	if cfg.Store.AutoMigrate {
		db, err := postgres.OpenSQL(cfg.DB.ConnectionString())
		if err != nil {
			return nil, err
		}
		err = postgres.Migrate(ctx, db, "up")
		_ = db.Close()
		if err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &relational{
		txRunner:   postgres.NewTxRunner(pool),
		parts:      postgres.NewPartRepository(pool),
		warehouses: postgres.NewWarehouseRepository(pool),
		quotes:     postgres.NewQuoteRepository(pool),
		deliveries: postgres.NewDeliveryRepository(pool),
		movements:  postgres.NewStockMovementRepository(pool),
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}

// openKeyValue conecta Redis (store + candados distribuidos) o usa el almacenamiento local.
func openKeyValue(ctx context.Context, cfg *config.Config) (*keyValue, error) {
	if cfg.KV.Driver == config.DriverMemory {
		return &keyValue{store: kv.NewMemoryStore(), locker: kv.NewLocalLocker(), close: func() {}}, nil
	}
	client, err := kv.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	return &keyValue{
		store:  kv.NewRedisStore(client, cfg.KV.Prefix),
		locker: kv.NewRedisLocker(client, cfg.KV.Prefix),
		close:  func() { _ = client.Close() },
	}, nil
}
