package initializers

import (
	"net/http"
	"net/http/pprof"

	"github.com/Asjdnnc/hackzilla/internal/metrics"
	"github.com/Asjdnnc/hackzilla/pkg/handlers"
	"github.com/Asjdnnc/hackzilla/pkg/team"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"log"
	"os"
)

func startGetEnv() {
	if os.Getenv("ENVIRONMENT") == "PROD" {
		return
	}

	err := godotenv.Load("local.env")

	if err != nil {
		log.Fatalf("Error loading .env file")
	}
}

func startLogger() *zap.Logger {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		log.Fatalf("LOG_LEVEL environment variable not set")
	}

	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
	}

	return zapLogger
}

func startPostgres() *gorm.DB {
	dsn := os.Getenv("PG_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Fatalf("Error initializing postgres: %v", err)
	}

	return db
}

func gormAutoMigrate(db *gorm.DB) {
	if os.Getenv("ENVIRONMENT") != "LOCAL" {
		return
	}

	if errAuto := db.AutoMigrate(
		&team.Team{},
		&team.Member{},
		&team.IDCounter{},
	); errAuto != nil {
		log.Fatalf("AutoMigrate failed: %v", errAuto)
		return
	}
}

func initTeamRoutes(router *gin.Engine, teamHandler *handlers.TeamHandler, scanHandler *handlers.ScanHandler, adminMW, staffMW gin.HandlerFunc) {
	teamsGroup := router.Group("/teams")

	// registration desk and the public listing need no token
	teamsGroup.POST("", teamHandler.CreateTeam)
	teamsGroup.GET("", teamHandler.ListTeams)

	// volunteers scan; everything else is the admin console
	teamsGroup.POST("/scan", staffMW, scanHandler.ScanQR)
	teamsGroup.GET("/:teamId", adminMW, teamHandler.GetTeam)
	teamsGroup.PUT("/:teamId", adminMW, teamHandler.UpdateTeam)
	teamsGroup.PUT("/:teamId/food", adminMW, scanHandler.UpdateFoodStatus)
	teamsGroup.GET("/:teamId/qr", adminMW, teamHandler.TeamQRCode)
	teamsGroup.DELETE("/:id", adminMW, teamHandler.DeleteTeam)
}

func initAdminRoutes(router *gin.Engine, adminHandler *handlers.AdminHandler, adminMW, staffMW gin.HandlerFunc) {
	adminGroup := router.Group("/admin")
	adminGroup.GET("/stats", adminMW, adminHandler.Stats)
	adminGroup.GET("/food-stats", staffMW, adminHandler.FoodStats)
}

func initPingRoute(router *gin.Engine) {
	// health check, also warms the service up after a cold start
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "pong"})
	})
}

func initMetricsMdlwr(router *gin.Engine) {
	router.Use(metrics.GinMiddleware)
	router.GET("/metrics", metrics.Handler())
}

func initMetricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:    ":" + os.Getenv("METRICS_PORT"),
		Handler: mux,
	}
}

func initpprof(router *gin.Engine) {
	pprofGroup := router.Group("/debug/pprof")
	pprofGroup.GET("/*profile", gin.WrapF(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/debug/pprof/cmdline":
			pprof.Cmdline(w, r)
		case "/debug/pprof/profile":
			pprof.Profile(w, r)
		case "/debug/pprof/symbol":
			pprof.Symbol(w, r)
		case "/debug/pprof/trace":
			pprof.Trace(w, r)
		default:
			pprof.Index(w, r)
		}
	}))
}
