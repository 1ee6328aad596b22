package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	commerce "github.com/goliatone/go-commerce"
)

func main() {
	cfg, err := commerce.NewEnvConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := createSchema(ctx, db); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	repo := commerce.NewRepositoryManager(db)
	repo.MustValidate()

	logger := commerce.DefaultLogger()

	tokens := commerce.NewTokenService(cfg, logger)
	auther := commerce.NewAuthenticator(
		repo.Users(),
		tokens,
		commerce.WithLogger(logger),
	)

	app := fiber.New(fiber.Config{
		AppName: "go-commerce",
	})
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return commerce.RespondOK(c, "Welcome to the commerce API")
	})

	auth := app.Group("/auth")
	commerce.RegisterAuthRoutes(auth,
		commerce.WithAuthRepo(repo),
		commerce.WithAuther(auther),
		commerce.WithAuthLogger(logger),
		commerce.WithAuthDebug(os.Getenv("DEBUG") != ""),
	)

	gate := commerce.ProtectedRoute(cfg, tokens)

	api := app.Group("/api")

	users := api.Group("/users", gate)
	commerce.RegisterUserRoutes(users, repo, logger)

	// Catalog reads are public; mutations sit behind the gate. The gate is
	// registered after the read routes so only later routes pass through it.
	products := api.Group("/product")
	productController := commerce.NewProductController(repo, logger)
	commerce.RegisterProductReadRoutes(products, productController)
	products.Use(gate)
	commerce.RegisterProductWriteRoutes(products, productController)

	categories := api.Group("/category", gate)
	commerce.RegisterCategoryRoutes(categories, repo, logger)

	orders := api.Group("/orders", gate)
	commerce.RegisterOrderRoutes(orders, repo, cfg.GetContextKey(), logger)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func createSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*commerce.User)(nil),
		(*commerce.Category)(nil),
		(*commerce.Product)(nil),
		(*commerce.Order)(nil),
		(*commerce.OrderItem)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
