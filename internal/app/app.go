package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cardswap/internal/auth"
	"cardswap/internal/config"
	"cardswap/internal/email"
	"cardswap/internal/handlers"
	"cardswap/internal/logger"
	"cardswap/internal/middleware"
	"cardswap/internal/repositories"
	"cardswap/internal/routes"
	"cardswap/internal/services"
	"cardswap/internal/storage"
	"cardswap/internal/templates"
	"cardswap/internal/validator"
	"cardswap/internal/workers"

	_ "cardswap/docs"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// Dependencies - внешние ресурсы приложения. В тестах подменяются целиком.
type Dependencies struct {
	Store   repositories.SubmissionStore
	Storage storage.Storage
	Email   email.Provider
	Worker  *workers.NotificationWorker

	closers []func() error
}

// Close освобождает ресурсы (соединение с БД)
func (d *Dependencies) Close() error {
	var errs []error
	for _, closeFn := range d.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// NewDependencies создаёт хранилища, почтовый транспорт и очередь уведомлений.
// provider == nil означает SMTP из конфигурации.
func NewDependencies(cfg *config.Config, provider email.Provider) (*Dependencies, error) {
	deps := &Dependencies{}

	store, closeStore, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}
	deps.Store = store
	if closeStore != nil {
		deps.closers = append(deps.closers, closeStore)
	}

	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	deps.Storage = storageInstance
	logger.Info("Storage initialized", "type", cfg.Storage.Type, "path", cfg.Storage.BasePath)

	if provider == nil {
		provider = NewEmailProvider(cfg)
	}
	deps.Email = provider
	deps.Worker = workers.NewNotificationWorker(provider, cfg.Notify.QueueSize)

	return deps, nil
}

// NewStore открывает хранилище заявок по store.type
func NewStore(cfg *config.Config) (repositories.SubmissionStore, func() error, error) {
	switch cfg.Store.Type {
	case "postgres":
		logger.Info("Connecting to database...")
		gormDB, err := gorm.Open(postgres.Open(cfg.Store.DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
		}

		store := repositories.NewGormSubmissionStore(gormDB)
		if err := store.Migrate(); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate submissions table: %w", err)
		}
		logger.Info("Database connected")
		return store, sqlDB.Close, nil

	default:
		store, err := repositories.NewJSONFileStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Submission store initialized", "path", store.Path())
		return store, nil, nil
	}
}

// NewEmailProvider строит SMTP-транспорт из единой почтовой конфигурации
func NewEmailProvider(cfg *config.Config) *email.SMTPProvider {
	smtpConfig := email.DefaultConfig()
	smtpConfig.Service = cfg.Email.Service
	smtpConfig.Host = cfg.Email.Host
	smtpConfig.Port = cfg.Email.Port
	smtpConfig.Username = cfg.Email.Username
	smtpConfig.Password = cfg.Email.Password
	smtpConfig.FromEmail = cfg.Email.From
	smtpConfig.FromName = cfg.Email.FromName
	smtpConfig.SSL = cfg.Email.Secure

	provider := email.NewSMTPProvider(smtpConfig)

	if err := provider.Validate(); err != nil {
		logger.Warn("Email delivery is not configured, notifications are disabled", "reason", err.Error())
	} else {
		resolved := provider.Config()
		logger.Info("Email provider initialized", "host", resolved.Host, "port", resolved.Port)
	}
	return provider
}

func mailSettings(cfg *config.Config) services.MailSettings {
	return services.MailSettings{
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Sender(),
		FromName: cfg.Email.FromName,
	}
}

// SetupRouter собирает сервисы, хэндлеры и маршруты
func SetupRouter(cfg *config.Config, deps *Dependencies) (*gin.Engine, error) {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	credentials, err := adminCredentials(cfg)
	if err != nil {
		return nil, err
	}

	ids, err := seedIDGenerator(deps.Store)
	if err != nil {
		return nil, err
	}

	// 1. Сервисы
	renderer := email.NewDefaultTemplateManager()
	mail := mailSettings(cfg)
	notificationService := services.NewNotificationService(cfg.Notify.Email, mail, deps.Worker, renderer)
	submissionService := services.NewSubmissionService(deps.Store, deps.Storage, notificationService, ids, cfg.Upload.MaxSize)
	contactService := services.NewContactService(cfg.ContactReceiver(), mail, deps.Email, renderer)

	if !notificationService.Enabled() {
		logger.Info("Submission notifications disabled (NOTIFY_EMAIL, EMAIL_USER or EMAIL_PASS not set)")
	}

	// 2. Хэндлеры
	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		SubmissionHandler: handlers.NewSubmissionHandler(baseHandler, submissionService, cfg.Upload.MaxSize),
		AdminHandler:      handlers.NewAdminHandler(baseHandler, submissionService),
		ContactHandler:    handlers.NewContactHandler(baseHandler, contactService),
		FileHandler:       handlers.NewFileHandler(baseHandler, deps.Storage),
		StaticHandler:     handlers.NewStaticHandler(cfg.Web.PublicDir, cfg.Web.IndexFile),
	}

	// 3. Gin
	ginRouter, err := initializeGinRouter(cfg, deps.Storage)
	if err != nil {
		return nil, err
	}

	// 4. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers, routes.Middlewares{
		AdminAuth: middleware.BasicAuthMiddleware(middleware.AdminRealm, credentials),
		RateLimit: middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})

	return ginRouter, nil
}

func initializeGinRouter(cfg *config.Config, uploads storage.Storage) (*gin.Engine, error) {
	router := gin.New()

	// Без доверенных прокси ClientIP - адрес соединения, X-Forwarded-For игнорируется
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	tpl, err := templates.Load(uploadURLFunc(uploads))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tpl)

	return router, nil
}

func adminCredentials(cfg *config.Config) (*auth.AdminCredentials, error) {
	if cfg.Admin.Password == config.DefaultAdminPassword {
		logger.Warn("ADMIN_PASS is not set, the default admin password is in use")
	} else if err := auth.ValidatePassword(cfg.Admin.Password); err != nil {
		logger.Warn("Weak admin password", "reason", err.Error())
	}

	credentials, err := auth.NewAdminCredentials(cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare admin credentials: %w", err)
	}
	logger.Info("Admin view enabled", "path", "/admin", "username", credentials.Username())
	return credentials, nil
}

// uploadURLFunc строит ссылки админки через хранилище загрузок
func uploadURLFunc(uploads storage.Storage) templates.URLFunc {
	return func(name string) string {
		u, err := uploads.GetURL(context.Background(), name)
		if err != nil {
			logger.Warn("Cannot build upload URL", "file", name, "error", err.Error())
			return ""
		}
		return u
	}
}

// seedIDGenerator продолжает последовательность id после уже сохранённых заявок
func seedIDGenerator(store repositories.SubmissionStore) (*services.IDGenerator, error) {
	ids := services.NewIDGenerator()

	existing, err := store.ListAll(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read submission store: %w", err)
	}
	for _, s := range existing {
		ids.Observe(s.ID)
	}
	return ids, nil
}

// Run запускает HTTP-сервер и воркер уведомлений до отмены ctx
func Run(ctx context.Context, cfg *config.Config) error {
	logger.Init(logger.Options{
		Env:        cfg.Server.Env,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	deps, err := NewDependencies(cfg, nil)
	if err != nil {
		return err
	}
	defer deps.Close()

	ginRouter, err := SetupRouter(cfg, deps)
	if err != nil {
		return err
	}

	deps.Worker.Start(ctx)
	deps.Worker.LogErrors(ctx)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
