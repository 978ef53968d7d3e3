package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/halarumdigital/agente-financeiro/internal/ai"
	"github.com/halarumdigital/agente-financeiro/internal/bot"
	"github.com/halarumdigital/agente-financeiro/internal/config"
	"github.com/halarumdigital/agente-financeiro/internal/database"
	"github.com/halarumdigital/agente-financeiro/internal/handlers"
	"github.com/halarumdigital/agente-financeiro/internal/logger"
	"github.com/halarumdigital/agente-financeiro/internal/middleware"
	"github.com/halarumdigital/agente-financeiro/internal/scheduler"
	"github.com/halarumdigital/agente-financeiro/internal/services"
	"github.com/halarumdigital/agente-financeiro/internal/validator"

	_ "github.com/halarumdigital/agente-financeiro/internal/docs" // Import swagger docs
)

// @title           Agente Financeiro API
// @version         1.0
// @description     Agente Financeiro is a personal finance tracker with a Telegram capture bot, savings boxes and recurring bill reminders.

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Connect(appConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.MigrateUp(appConfig, "file://migrations"); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	savingsBoxService := services.NewSavingsBoxService(db)
	billService := services.NewBillService(db, categoryService, transactionService)
	reportService := services.NewReportService(db, transactionService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telegram bot and bill reminder scheduler. Both are optional: without a
	// bot token the REST API still runs on its own.
	if appConfig.TelegramBotToken != "" {
		botAPI, err := tgbotapi.NewBotAPI(appConfig.TelegramBotToken)
		if err != nil {
			return fmt.Errorf("failed to connect to Telegram: %w", err)
		}
		log.Infof("Telegram bot authorized as @%s", botAPI.Self.UserName)

		oracle := ai.NewOpenAI(appConfig.OpenAIAPIKey)
		finBot := bot.New(botAPI, oracle, bot.Services{
			Categories:   categoryService,
			Transactions: transactionService,
			SavingsBoxes: savingsBoxService,
			Bills:        billService,
			Reports:      reportService,
		}, appConfig.TelegramChatID, appConfig.PendingTTL)

		go func() {
			if err := finBot.Run(ctx); err != nil {
				log.Errorf("Telegram bot stopped: %v", err)
			}
		}()

		if appConfig.TelegramChatID != 0 {
			reminder := scheduler.New(billService, botAPI, appConfig.TelegramChatID, appConfig.ReminderHours)
			go reminder.Run(ctx)
		} else {
			log.Warn("TELEGRAM_CHAT_ID not set, bill reminders disabled")
		}
	} else {
		log.Warn("TELEGRAM_BOT_TOKEN not set, running without the Telegram bot")
	}

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	savingsBoxHandler := handlers.NewSavingsBoxHandler(savingsBoxService)
	billHandler := handlers.NewBillHandler(billService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	validator.Register()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	categories := api.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/recent", transactionHandler.GetRecentTransactions)
	transactions.GET("/summary", transactionHandler.GetMonthSummary)
	transactions.GET("/:id", transactionHandler.GetTransaction)

	boxes := api.Group("/savings-boxes")
	boxes.GET("", savingsBoxHandler.ListSavingsBoxes)
	boxes.POST("", savingsBoxHandler.CreateSavingsBox)
	boxes.GET("/:id", savingsBoxHandler.GetSavingsBox)
	boxes.DELETE("/:id", savingsBoxHandler.DeleteSavingsBox)
	boxes.POST("/:id/deposit", savingsBoxHandler.Deposit)
	boxes.POST("/:id/withdraw", savingsBoxHandler.Withdraw)

	bills := api.Group("/bills")
	bills.GET("", billHandler.ListBills)
	bills.POST("", billHandler.CreateBill)
	bills.GET("/upcoming", billHandler.GetUpcomingBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.POST("/:id/pay", billHandler.PayBill)

	reports := api.Group("/reports")
	reports.GET("/by-category", reportHandler.ByCategory)
	reports.GET("/by-period", reportHandler.ByPeriod)
	reports.GET("/transactions", reportHandler.Transactions)
	reports.GET("/summary", reportHandler.Summary)

	api.GET("/dashboard", reportHandler.Dashboard)

	server := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Server shutdown error: %v", err)
		}
	}()

	log.Infof("Starting server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
