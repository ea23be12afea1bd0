package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"

	"github.com/skeletohq/skeleto/crud"
	"github.com/skeletohq/skeleto/docs"
	"github.com/skeletohq/skeleto/middleware"
	"github.com/skeletohq/skeleto/model"
	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
	"github.com/skeletohq/skeleto/router"
	"github.com/skeletohq/skeleto/server"
)

var noteSchema = model.Schema{
	Table: "note",
	Fields: []model.Field{
		{Name: "title", Type: "TEXT", Constraint: "NOT NULL"},
		{Name: "content", Type: "TEXT"},
		{Name: "priority", Type: "INTEGER"},
	},
}

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	figure.NewFigure("skeleto", "", false).Print()

	registry := docs.NewRegistry(docs.FormatHTML)
	app := router.New()

	app.Handle("/", func(_ *request.Context) *response.Response {
		return response.New("<h1>hullo</h1>")
	})
	registry.Add("/", "Landing page")

	app.Handle("/greet/(?P<name>[^/]+)", func(ctx *request.Context) *response.Response {
		return response.New(fmt.Sprintf("<p>hello, %s</p>", ctx.PathParams["name"]))
	})
	registry.Add("/greet/{name}", "Greet someone by name")

	app.Handle("/panic", func(_ *request.Context) *response.Response {
		panic("boom")
	})

	app.Handle("/docs", registry.Handler())

	app.Handle("/admin", middleware.Wrap(func(_ *request.Context) *response.Response {
		return response.New("<h1>admin</h1><p>it's quiet in here</p>")
	}, middleware.AccessCode(cfg.AccessCode)))
	registry.Add("/admin", "Operator page, gated by the access code")

	// the CRUD pages need a database; skipped when no URL is configured
	if dbURL := os.Getenv("SKELETO_DATABASE_URL"); dbURL != "" {
		store, err := model.Connect(context.Background(), dbURL)
		if err != nil {
			log.Fatalf("unable to connect to database: %v", err)
		}
		if err := store.CreateTable(context.Background(), noteSchema); err != nil {
			log.Fatalf("unable to create table: %v", err)
		}
		crud.Register(app, registry, "/notes", noteSchema, store)
	}

	csrf, err := middleware.NewCSRF(cfg.TrustedOrigins...)
	if err != nil {
		log.Fatalf("invalid trusted origins: %v", err)
	}

	chain := middleware.NewChain(
		middleware.LoggingColored(),
		middleware.RequestID(),
		middleware.BodyLimit(cfg.MaxBodyBytes),
		middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		csrf.Middleware(),
	)

	srv, err := server.Serve(cfg, chain.Then(app.Handler()))
	if err != nil {
		log.Fatalf("unable to start server: %v", err)
	}
	defer srv.Close()
	log.Println("serving on", cfg.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("server stopped")
}
