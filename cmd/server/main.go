package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mviller/propnest/internal/config"
	"github.com/mviller/propnest/internal/database"
	"github.com/mviller/propnest/internal/handler"
	"github.com/mviller/propnest/internal/middleware"
	"github.com/mviller/propnest/internal/queue"
	"github.com/mviller/propnest/internal/repository"
	"github.com/mviller/propnest/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(database.Config{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	props := repository.NewPropertyRepo(db)
	msgs := repository.NewMessageRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.Register(e, cfg,
		handler.NewAuthHandler(cfg, users),
		handler.NewPropertyHandler(props),
		handler.NewMessageHandler(msgs, props),
		rdb)

	// Notification trail consumer; reconnects on its own.
	go queue.StartMessageConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
