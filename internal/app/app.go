package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/middleware"
	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// businessLocation loads the wall clock attendance days are counted in.
// Punches arrive with whatever offset the device stamps; everything that
// attributes a date or anchors a schedule window uses this location.
func businessLocation() (*time.Location, error) {
	tz := os.Getenv("APP_TIMEZONE")
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load APP_TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		zap.L().Warn("redis unavailable, idempotency and report caching disabled", zap.Error(err))
		redisClient = nil
	}

	loc, err := businessLocation()
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	return registerModules(router, db, gormDB, redisClient, loc)
}
