package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ehealth/config"
	"ehealth/cron"
	"ehealth/database"
	"ehealth/database/repository"
	"ehealth/handlers"
	"ehealth/middleware"
	"ehealth/routes"
	"ehealth/services/admin"
	"ehealth/services/appointment"
	"ehealth/services/message"
	"ehealth/services/records"
	"ehealth/services/scheduling"
	"ehealth/services/storage"
	"ehealth/services/tasks"
	"ehealth/services/user"
	"ehealth/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	// repositories.
	var repos *repository.Repositories
	var pinger utils.Pinger
	if config.UsesMemoryStore() {
		logger.Warn("main: using the in-process store, data is lost on restart")
		repos = repository.NewMemoryRepositories(config.AppConfig.BookingUniqueIndex)
	} else {
		database.InitDB()
		repos = repository.NewMongoRepositories(database.DB(), config.AppConfig.BookingUniqueIndex)
		pinger = database.Pinger{}
	}

	utils.InitCache()
	utils.InitAuthCache()

	// notifications.
	var notifier tasks.Notifier = &tasks.InboxNotifier{Inbox: repos.Messages}
	var worker *asynq.Server
	var queue *asynq.Client
	if utils.RedisEnabled() && utils.GetCacheClient() != nil {
		queue = asynq.NewClient(cron.QueueRedisOpt())
		notifier = &tasks.QueueNotifier{Client: queue}
		worker = cron.InitNotificationWorker(repos.Messages)
	} else {
		logger.Info("main: task queue disabled, notifications are written inline")
	}

	// file storage.
	var blobs storage.BlobStore = storage.DisabledStore{}
	cld, err := storage.NewCloudinaryStore(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Warn("main: report uploads disabled", zap.Error(err))
	} else {
		blobs = cld
	}

	// services.
	store := &scheduling.DoctorAvailabilityStore{
		Directory: repos.Users,
		Strict:    config.AppConfig.AvailabilityStrict,
	}
	if client := utils.GetCacheClient(); client != nil {
		store.Cache = scheduling.NewRedisAvailabilityCache(client)
	}
	schedulingService := scheduling.NewService(store, repos.Appointments)
	appointmentService := appointment.NewAppointmentService(repos.Appointments, repos.Users, schedulingService, notifier)
	userService := user.NewUserService(repos.Users, repos.Appointments)
	messageService := message.NewMessageService(repos.Messages, repos.Users, repos.Appointments)
	recordService := records.NewRecordService(repos.Records, repos.Users)
	reportService := storage.NewReportService(blobs, repos.Reports)
	adminService := admin.NewAdminService(repos.Users, repos.Appointments, appointmentService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     repos.Users,
		User:         handlers.NewUserHandler(userService),
		Availability: handlers.NewAvailabilityHandler(schedulingService),
		Appointment:  handlers.NewAppointmentHandler(appointmentService),
		Message:      handlers.NewMessageHandler(messageService),
		Record:       handlers.NewRecordHandler(recordService),
		Report:       handlers.NewReportHandler(reportService),
		Admin:        handlers.NewAdminHandler(adminService),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second, utils.RedisClients(), pinger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect database: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
