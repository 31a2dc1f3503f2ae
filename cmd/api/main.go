package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/assistant"
	"pocketledger/internal/auth"
	"pocketledger/internal/backup"
	"pocketledger/internal/biometric"
	"pocketledger/internal/cipher"
	"pocketledger/internal/config"
	"pocketledger/internal/credentials"
	"pocketledger/internal/database"
	"pocketledger/internal/handlers"
	"pocketledger/internal/ledger"
	"pocketledger/internal/logger"
	"pocketledger/internal/middleware"
	"pocketledger/internal/storage"
	"pocketledger/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the on-device store and apply migrations.
	dbManager, err := database.NewManager(appConfig.DataPath, appConfig.MigrationsPath)
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Storage scopes: device slots survive restarts, session slots do not.
	device := storage.NewGormStore(dbManager.DB())
	sessionScope := storage.NewMemStore()

	// Core services.
	creds := credentials.NewStore(device, cipher.Default())
	session, err := auth.NewSession(creds, device, sessionScope)
	if err != nil {
		return fmt.Errorf("failed to initialize auth session: %w", err)
	}
	ledgerStore, err := ledger.Open(device)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	backupCodec := backup.NewCodec(creds, ledgerStore, session)
	binder := biometric.NewBinder(biometric.UnsupportedPlatform{}, creds, session)
	dispatcher := assistant.NewDispatcher(ledgerStore)

	// Handlers.
	authHandler := handlers.NewAuthHandler(session, creds, binder)
	expenseHandler := handlers.NewExpenseHandler(ledgerStore)
	incomeHandler := handlers.NewIncomeHandler(ledgerStore)
	budgetHandler := handlers.NewBudgetHandler(ledgerStore)
	backupHandler := handlers.NewBackupHandler(backupCodec, session)
	exportHandler := handlers.NewExportHandler(ledgerStore)
	assistantHandler := handlers.NewAssistantHandler(dispatcher, session)
	settingsHandler := handlers.NewSettingsHandler(device)

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware for the local UI.
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes.
	authRoutes := v1.Group("/auth")
	authRoutes.POST("/signup", authHandler.Signup)
	authRoutes.POST("/onboarding", authHandler.CompleteOnboarding)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/reset-password", authHandler.ResetPassword)
	authRoutes.POST("/biometric/verify", authHandler.VerifyBiometric)

	// Account recovery on a fresh device is public: no owner exists yet.
	v1.POST("/backup/restore-account", backupHandler.RestoreAccount)

	// Protected routes.
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(session))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.POST("/auth/biometric/register", authHandler.RegisterBiometric)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.POST("/restore", expenseHandler.RestoreExpense)

	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)
	incomes.POST("/:id/received", incomeHandler.MarkReceived)

	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:category", budgetHandler.GetBudget)

	backups := protected.Group("/backup")
	backups.POST("", backupHandler.CreateBackup)
	backups.POST("/restore", backupHandler.Restore)

	protected.GET("/export/csv", exportHandler.ExportCSV)

	assistantRoutes := protected.Group("/assistant")
	assistantRoutes.POST("/command", assistantHandler.ExecuteCommand)
	assistantRoutes.POST("/chat", assistantHandler.AppendChat)
	assistantRoutes.GET("/chat", assistantHandler.GetChat)

	settings := protected.Group("/settings")
	settings.GET("/theme", settingsHandler.GetTheme)
	settings.PUT("/theme", settingsHandler.SetTheme)

	log.Infof("Starting pocketledger on port %s (data: %s)", appConfig.Port, appConfig.DataPath)
	return router.Run("127.0.0.1:" + appConfig.Port)
}
