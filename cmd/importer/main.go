package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/willotis/tamarind-drinks-app/internal/config"
	"github.com/willotis/tamarind-drinks-app/internal/db"
	"github.com/willotis/tamarind-drinks-app/internal/importer"
	categoryrepo "github.com/willotis/tamarind-drinks-app/internal/repository/category"
	productrepo "github.com/willotis/tamarind-drinks-app/internal/repository/product"
)

func main() {
	feedPath := flag.String("feed", "", "path to the JSON catalog feed")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if *feedPath == "" {
		logger.Fatal("usage: importer -feed <catalog.json>")
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(*feedPath)
	if err != nil {
		logger.Fatalf("open feed: %v", err)
	}
	defer f.Close()

	imp := importer.New(
		productrepo.NewPostgres(pool, logger),
		categoryrepo.NewPostgres(pool),
	)
	count, err := imp.Run(ctx, f)
	if err != nil {
		logger.Fatalf("import: %v", err)
	}
	logger.Printf("imported %d products", count)
}
