// Package main runs the mesoplan MCP server over stdio, for local agent use.
// The same tools are mounted on the service at /mcp over streamable HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/mesoplan/internal/config"
	"github.com/2beens/mesoplan/internal/db"
	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/defaults"
	"github.com/2beens/mesoplan/internal/periodization/landmarks"
	"github.com/2beens/mesoplan/internal/periodization/mcp"
	"github.com/2beens/mesoplan/internal/periodization/mesocycles"
	"github.com/2beens/mesoplan/internal/periodization/recommender"
	"github.com/2beens/mesoplan/internal/periodization/sessions"
	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/metrics"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	userID := flag.Int("user", 0, "user the tools act for")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	if *userID <= 0 {
		log.Fatalf("-user must be a positive user id")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("MESOPLAN_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	metricsManager := metrics.NewManager("mesoplan", "mcp", prometheus.NewRegistry())
	store := training.NewRepo(dbPool)
	exerciseCatalog := catalog.NewCachedRepo(
		catalog.NewRepo(dbPool),
		cfg.CatalogCacheSizeMB,
		cfg.CatalogCacheTTLSeconds,
	)
	landmarksService := landmarks.NewService(landmarks.NewRepo(dbPool))
	resolver := defaults.NewResolver(defaults.DefaultPolicy(), exerciseCatalog, landmarksService)

	svc := mcp.NewContextService(
		mcp.NewPoolSchemaRepo(dbPool),
		mesocycles.NewService(store, resolver),
		sessions.NewCustomizer(store, resolver, metricsManager),
		recommender.NewService(
			store,
			recommender.NewCheckInRepo(dbPool),
			landmarksService,
			exerciseCatalog,
			nil,
			metricsManager,
		),
		exerciseCatalog,
	)

	s := mcp.NewServer(svc, "stdio")
	if err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, *userID)
	})); err != nil {
		log.Fatal(err)
	}
}
