package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/car-rental-reservation/internal/config"
    "github.com/iliyamo/car-rental-reservation/internal/database"
    "github.com/iliyamo/car-rental-reservation/internal/handler"
    "github.com/iliyamo/car-rental-reservation/internal/middleware"
    "github.com/iliyamo/car-rental-reservation/internal/queue"
    "github.com/iliyamo/car-rental-reservation/internal/repository"
    "github.com/iliyamo/car-rental-reservation/internal/router"
)

func main() {
    // .env is optional; real deployments export variables directly.
    if err := godotenv.Load(); err != nil {
        log.Println("no .env file found, relying on environment")
    }

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    defer db.Close()
    log.Println("connected to database")

    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable: response cache, rate limiting and remembered searches disabled")
    } else {
        log.Println("connected to redis")
    }

    carRepo := repository.NewCarRepo(db)
    reservationRepo := repository.NewReservationRepo(db)
    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)

    deps := router.Deps{
        Cfg:          cfg,
        Auth:         handler.NewAuthHandler(cfg, userRepo, tokenRepo),
        Search:       handler.NewSearchHandler(carRepo, rdb),
        Cars:         handler.NewCarHandler(carRepo, reservationRepo),
        Reservations: handler.NewReservationHandler(cfg, carRepo, reservationRepo, userRepo),
        Users:        handler.NewUserHandler(cfg, userRepo),
        Cache:        middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
    }

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.Register(e, deps)

    // Consumer runs for the process lifetime with its own
    // reconnect loop.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    log.Printf("starting server on :%s (env=%s)", cfg.Port, cfg.Env)
    if err := e.Start(":" + cfg.Port); err != nil {
        log.Fatalf("server stopped: %v", err)
    }
}
