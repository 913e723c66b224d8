package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	adapthttp "healthlog/internal/adapter/http"
	"healthlog/internal/adapter/sqlite"
	"healthlog/internal/app"
)

func main() {
	_ = godotenv.Load()

	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")
	dbPath := env("HEALTH_DB_PATH", "data/health.sqlite3")

	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	entrySvc := app.NewEntryService(db)
	flagsSvc := app.NewFlagsService(db)
	chartsSvc := app.NewChartsService(db)

	h := adapthttp.New(entrySvc, flagsSvc, chartsSvc, webDir).Handler()
	log.Printf("listening on %s (db %s)", addr, dbPath)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
