package app

import (
	"database/sql"

	"go-daycare/internal/activity"
	"go-daycare/internal/attendance"
	"go-daycare/internal/auth"
	"go-daycare/internal/authz"
	"go-daycare/internal/billing"
	"go-daycare/internal/child"
	"go-daycare/internal/classroom"
	"go-daycare/internal/medical"
	"go-daycare/internal/messaging/kafka"
	"go-daycare/internal/middleware"
	"go-daycare/internal/notification"
	"go-daycare/internal/shared/counter"
	"go-daycare/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	childRepo := child.NewRepository(gormDB)
	classroomRepo := classroom.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	activityRepo := activity.NewRepository(gormDB)
	medicalRepo := medical.NewRepository(gormDB)
	billingRepo := billing.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization Core ---
	ev, err := authz.NewEvaluator(
		child.NewDirectory(childRepo),
		classroom.NewDirectory(classroomRepo),
	)
	if err != nil {
		return err
	}

	// --- Services ---
	userService := user.NewService(userRepo)
	authService := auth.NewService(userService, userRepo)
	childService := child.NewService(childRepo, logger)
	classroomService := classroom.NewService(classroomRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, ev, logger)
	activityService := activity.NewService(activityRepo, ev, logger)
	medicalService := medical.NewService(medicalRepo, ev, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	billingService := billing.NewService(
		db,
		billingRepo,
		counterRepo,
		child.NewBillingStore(childRepo),
		attendance.NewBillingStore(attendanceRepo),
		outboxRepo,
		rdb,
		logger,
		billing.LoadRateScheduleFromEnv(),
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, logger)
	childHandler := child.NewHandler(childService)
	classroomHandler := classroom.NewHandler(classroomService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	activityHandler := activity.NewHandler(activityService)
	medicalHandler := medical.NewHandler(medicalService)
	notificationHandler := notification.NewHandler(notificationService)
	billingHandler := billing.NewHandlerWithRedis(billingService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.ContextLogger(logger))
	{
		auth.RegisterRoutes(api, authHandler, ev)
		user.RegisterRoutes(api, userHandler, ev, logger)
		child.RegisterRoutes(api, childHandler, ev)
		classroom.RegisterRoutes(api, classroomHandler, ev)
		attendance.RegisterRoutes(api, attendanceHandler, ev)
		activity.RegisterRoutes(api, activityHandler, ev)
		medical.RegisterRoutes(api, medicalHandler, ev)
		notification.RegisterRoutes(api, notificationHandler, ev)
		billing.RegisterRoutes(api, billingHandler, ev, rdb)
	}

	return nil
}
