package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"me-python-boutique/app/controller"
	"me-python-boutique/app/router"
	"me-python-boutique/config"
	"me-python-boutique/db"
	"me-python-boutique/repository"
	"me-python-boutique/service"
)

// App holds the wired HTTP handler and everything that needs stopping
type App struct {
	Handler http.Handler

	catalog  *service.CatalogService
	offers   *service.OfferService
	lightbox *controller.LightboxController
	cancel   context.CancelFunc
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database connection (optional)
	if err := db.InitDB(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var snapshots repository.SnapshotRepositoryInterface
	var offerRepo repository.OfferRepositoryInterface
	if db.DB != nil {
		snapshots = repository.NewSnapshotRepository(db.DB)
		offerRepo = repository.NewOfferRepository(db.DB)
	}

	// Drive is only used to enrich the fallback dataset
	var driveService service.DriveServiceInterface
	if cfg.Drive.CredentialsPath != "" && cfg.Drive.FallbackFolderID != "" {
		ds, err := service.NewDriveService(ctx, cfg.Drive.CredentialsPath)
		if err != nil {
			log.Printf("⚠️  Drive gallery disabled: %v", err)
		} else {
			driveService = ds
		}
	}

	fallback, err := service.NewFallbackCatalog(driveService, cfg.Drive.FallbackFolderID)
	if err != nil {
		return nil, err
	}

	contentStore := service.NewContentfulClient(cfg.Contentful, nil)
	catalog := service.NewCatalogService(service.NewNormalizer(contentStore), snapshots, fallback)
	catalog.Refresh(ctx)

	appCtx, cancel := context.WithCancel(context.Background())
	if err := catalog.StartSchedule(appCtx, cfg.Catalog.RefreshCron); err != nil {
		cancel()
		return nil, err
	}

	assistant, err := service.NewAssistantService(ctx, cfg.Assistant)
	if err != nil {
		cancel()
		catalog.Stop()
		return nil, err
	}

	optimizer := service.NewImageOptimizer(cfg.StaticDir, cfg.Images.CacheDir)
	if err := optimizer.EnsureCacheDir(); err != nil {
		log.Printf("⚠️  %v", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}
	priceList := service.NewPriceListService(catalog, baseURL, cfg.ChromePath)
	offers := service.NewOfferService(catalog, offerRepo, cfg.Offers, nil)

	lightbox := controller.NewLightboxController(catalog)
	lightbox.StartSweeper(appCtx)

	// Create controllers
	controllers := &router.Controllers{
		Snake:     controller.NewSnakeController(catalog),
		Vendor:    controller.NewVendorController(catalog),
		Catalog:   controller.NewCatalogController(catalog, priceList),
		Lightbox:  lightbox,
		Offer:     controller.NewOfferController(offers),
		Assistant: controller.NewAssistantController(assistant),
		Image:     controller.NewImageController(optimizer),
	}

	// Setup routes using standard http router
	handler := router.SetupRoutes(http.NewServeMux(), controllers)

	return &App{
		Handler:  handler,
		catalog:  catalog,
		offers:   offers,
		lightbox: lightbox,
		cancel:   cancel,
	}, nil
}

// Close stops background work and waits for pending offer forwards
func (a *App) Close() {
	a.cancel()
	a.catalog.Stop()
	a.lightbox.CloseAll()
	a.offers.Wait()
}
