package main

import (
	"log"
	"net/http"

	"warehouse-surveillance/be/config"
	"warehouse-surveillance/be/database"
	"warehouse-surveillance/be/handlers"
	"warehouse-surveillance/be/logger"
	"warehouse-surveillance/be/middleware"
	"warehouse-surveillance/be/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	appLog, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		appLog.Fatal("failed to initialize database", "error", err)
	}

	kinesisService, err := services.NewKinesisService(cfg.AWS)
	if err != nil {
		appLog.Fatal("failed to initialize Kinesis Video client", "error", err)
	}

	blobStore, err := services.NewAzureBlobStore(cfg.Azure)
	if err != nil {
		appLog.Fatal("failed to initialize Azure blob client", "error", err)
	}
	transcriptService := services.NewTranscriptService(blobStore, appLog)

	bedrockService, err := services.NewBedrockService(cfg.AWS)
	if err != nil {
		appLog.Fatal("failed to initialize Bedrock client", "error", err)
	}

	warehouseHandler := handlers.NewWarehouseHandler(db, appLog)
	cameraHandler := handlers.NewCameraHandler(db, kinesisService, appLog)
	chunkHandler := handlers.NewChunkHandler(db, appLog)
	logHandler := handlers.NewLogHandler(db, appLog)
	dashboardHandler := handlers.NewDashboardHandler(db, appLog)
	analyticsHandler := handlers.NewAnalyticsHandler(db, appLog)
	chatHandler := handlers.NewChatHandler(db, transcriptService, bedrockService, cfg.Bedrock.DefaultModelID, appLog)

	router := setupRouter(cfg, warehouseHandler, cameraHandler, chunkHandler, logHandler, dashboardHandler, analyticsHandler, chatHandler)

	appLog.Info("server starting", "port", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		appLog.Fatal("failed to start server", "error", err)
	}
}

func setupRouter(
	cfg *config.Config,
	warehouseHandler *handlers.WarehouseHandler,
	cameraHandler *handlers.CameraHandler,
	chunkHandler *handlers.ChunkHandler,
	logHandler *handlers.LogHandler,
	dashboardHandler *handlers.DashboardHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	chatHandler *handlers.ChatHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// The portal frontend is served from a different origin; keep CORS
	// permissive like the gateway expects.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length", "Content-Type"},
		MaxAge:          12 * 3600,
	}))

	router.GET("/", healthCheck)
	router.GET("/health", healthCheck)

	api := router.Group("/api/v1")
	if cfg.Auth.Secret != "" {
		api.Use(middleware.AuthMiddleware(cfg.Auth.Secret))
	}

	api.GET("/warehouses", warehouseHandler.GetWarehouses)
	api.GET("/warehouses/:warehouse_id", warehouseHandler.GetWarehouse)
	api.GET("/cameras/stream-url", cameraHandler.GetStreamURL)

	warehouse := api.Group("/warehouses/:warehouse_id")
	warehouse.GET("/dashboard", dashboardHandler.GetDashboard)

	camera := warehouse.Group("/cameras/:cam_id")
	camera.GET("/chunks", chunkHandler.GetChunks)
	camera.GET("/logs/employees", logHandler.GetEmployeeLogs)
	camera.GET("/logs/gunny-bags", logHandler.GetGunnyBagLogs)
	camera.GET("/logs/vehicles", logHandler.GetVehicleLogs)
	camera.GET("/analytics/vehicle-gunny-count", analyticsHandler.GetVehicleGunnyCount)
	camera.POST("/chunks/:chunk_id/chat", chatHandler.Chat)

	return router
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Warehouse API is running",
		"version": "1.0.0",
		"endpoints": gin.H{
			"warehouses":              "GET /api/v1/warehouses - Get all warehouses with employees",
			"warehouse_by_id":         "GET /api/v1/warehouses/{warehouse_id} - Get specific warehouse details",
			"camera_stream":           "GET /api/v1/cameras/stream-url - Get HLS streaming URL for camera",
			"chunks":                  "GET /api/v1/warehouses/{warehouse_id}/cameras/{cam_id}/chunks - Get video chunks",
			"employee_logs":           "GET /api/v1/warehouses/{warehouse_id}/cameras/{cam_id}/logs/employees - Get employee logs",
			"gunny_logs":              "GET /api/v1/warehouses/{warehouse_id}/cameras/{cam_id}/logs/gunny-bags - Get gunny bag logs",
			"vehicle_logs":            "GET /api/v1/warehouses/{warehouse_id}/cameras/{cam_id}/logs/vehicles - Get vehicle logs",
			"dashboard":               "GET /api/v1/warehouses/{warehouse_id}/dashboard - Get dashboard analytics",
			"vehicle_gunny_analytics": "GET /api/v1/warehouses/{warehouse_id}/cameras/{cam_id}/analytics/vehicle-gunny-count - Get vehicle-wise gunny count",
			"chat":                    "POST /api/v1/warehouses/{warehouse_id}/cameras/{cam_id}/chunks/{chunk_id}/chat - Chat about a video chunk",
		},
	})
}
