package app

import (
	"database/sql"
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/apply"
	"github.com/pokemogu/TimecardSystem-sub001/internal/device"
	"github.com/pokemogu/TimecardSystem-sub001/internal/messaging/kafka"
	"github.com/pokemogu/TimecardSystem-sub001/internal/record"
	"github.com/pokemogu/TimecardSystem-sub001/internal/schedule"
	"github.com/pokemogu/TimecardSystem-sub001/internal/user"
	"github.com/pokemogu/TimecardSystem-sub001/internal/worktime"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	loc *time.Location,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	deviceRepo := device.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	applyRepo := apply.NewRepository(gormDB)
	recordRepo := record.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Apply type registry ---
	// One instance, shared by validation, approval and aggregation.
	typeRegistry := apply.NewTypeRegistry()

	// --- Services ---
	userService := user.NewService(db, userRepo)
	deviceService := device.NewService(db, deviceRepo)
	scheduleService := schedule.NewService(db, scheduleRepo)
	applyService := apply.NewServiceWithOutbox(db, applyRepo, typeRegistry, outboxRepo)
	recordService := record.NewService(db, recordRepo, userService, deviceService, loc)
	worktimeService := worktime.NewService(
		userService, userRepo, recordRepo, scheduleService, applyService, typeRegistry, loc,
	)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	deviceHandler := device.NewHandler(deviceService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	applyHandler := apply.NewHandler(applyService)
	recordHandler := record.NewHandler(recordService)
	worktimeHandler := worktime.NewHandlerWithRedis(worktimeService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler)
		device.RegisterRoutes(api, deviceHandler)
		schedule.RegisterRoutes(api, scheduleHandler)
		apply.RegisterRoutes(api, applyHandler)
		record.RegisterRoutes(api, recordHandler, rdb)
		worktime.RegisterRoutes(api, worktimeHandler)
	}

	return nil
}
