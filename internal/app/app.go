package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/controller"
	"therapy_dashboard/internal/repository"
	"therapy_dashboard/internal/service"
	"therapy_dashboard/pkg/configwatcher"
	"therapy_dashboard/pkg/database"
	"therapy_dashboard/pkg/logger"
	"therapy_dashboard/pkg/monitoring"
	"therapy_dashboard/pkg/security"
	"therapy_dashboard/pkg/tracing"
	"therapy_dashboard/web"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	repos           *repositories
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	mu            sync.Mutex
	configWatcher *configwatcher.Watcher
	dataWatcher   *configwatcher.Watcher
}

type repositories struct {
	survey *repository.SurveyRepository
	export *repository.ExportRepository
}

type services struct {
	view    *service.ViewService
	storage *service.StorageService
	export  *service.ExportService
}

type controllers struct {
	dashboard *controller.DashboardController
	export    *controller.ExportController
	health    *controller.HealthController
}

// RegisterConfigCallback 注册配置文件变更后的回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(cfg *config.Config, db *gorm.DB) *repositories {
	scale, _ := cfg.Dashboard.ScaleMap()
	repos := &repositories{
		survey: repository.NewSurveyRepository(cfg.Data, scale),
	}
	if db != nil {
		repos.export = repository.NewExportRepository(db)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	viewService := service.NewViewService(&cfg.Dashboard)
	storageService := service.NewStorageService(&cfg.Storage)
	return &services{
		view:    viewService,
		storage: storageService,
		export:  service.NewExportService(viewService, storageService, repos.export),
	}
}

func (a *App) initControllers(s *services, repos *repositories, cfg *config.Config, db *gorm.DB) *controllers {
	return &controllers{
		dashboard: controller.NewDashboardController(s.view, cfg.Dashboard.Title),
		export:    controller.NewExportController(s.export),
		health:    controller.NewHealthController(db, repos.survey),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if cfg.RateLimit.MaxRequests > 0 && window > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window, "/metrics", "/api/health"))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startWatchers 监听配置文件与 CSV 文件的变更
func (a *App) startWatchers() {
	if a.Config.ConfigFile != "" {
		w, err := configwatcher.Watch(a.Config.ConfigFile, a.reloadConfig)
		if err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		} else {
			a.configWatcher = w
		}
	}

	a.RegisterConfigCallback(func(cfg *config.Config) {
		scale, _ := cfg.Dashboard.ScaleMap()
		a.repos.survey.Reconfigure(cfg.Data, scale)
		a.watchData(cfg.Data)
	})

	a.watchData(a.Config.Data)
}

func (a *App) watchData(cfg config.DataConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dataWatcher != nil {
		a.dataWatcher.Close()
		a.dataWatcher = nil
	}
	if !cfg.Watch {
		return
	}

	w, err := configwatcher.Watch(cfg.Path, func() {
		logger.Log.Info("Dataset file changed, invalidating cache", zap.String("path", cfg.Path))
		a.repos.survey.Invalidate()
	})
	if err != nil {
		logger.Log.Warn("Dataset watch disabled", zap.String("path", cfg.Path), zap.Error(err))
		return
	}
	a.dataWatcher = w
}

func (a *App) reloadConfig() {
	cfg, err := config.LoadConfig(filepath.Dir(a.Config.ConfigFile))
	if err != nil {
		logger.Log.Error("Failed to reload config, keeping previous", zap.Error(err))
		return
	}
	logger.Log.Info("Config reloaded", zap.String("file", cfg.ConfigFile))
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	var db *gorm.DB
	if cfg.Database.Enabled {
		var err error
		db, err = database.InitDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(cfg, db)
	app.repos = repos
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, repos, cfg, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	tmpl, err := web.Templates()
	if err != nil {
		logger.Log.Fatal("Failed to parse templates", zap.Error(err))
	}
	router.SetHTMLTemplate(tmpl)

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// 远端存储不可用时也会退回本地存储
	if _, ok := services.storage.Provider.(*service.LocalStorageProvider); ok {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	app.startWatchers()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	a.mu.Lock()
	if a.configWatcher != nil {
		a.configWatcher.Close()
	}
	if a.dataWatcher != nil {
		a.dataWatcher.Close()
	}
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
