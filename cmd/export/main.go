// Command export writes all stored requests and bookings to an xlsx file.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/app"
	"github.com/iliyamo/tutor-booking/internal/config"
	"github.com/iliyamo/tutor-booking/internal/database"
	"github.com/iliyamo/tutor-booking/internal/export"
	"github.com/iliyamo/tutor-booking/internal/repository"
)

func main() {
	out := flag.String("out", "followup.xlsx", "output workbook path")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	logger := app.NewLogger(os.Getenv("APP_ENV"))
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := database.Open(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal("create output", zap.Error(err))
	}
	exp := export.NewExporter(repository.NewRequestRepo(db.DB), repository.NewBookingRepo(db.DB))
	st, err := exp.Write(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Fatal("export", zap.Error(err))
	}
	logger.Info("exported", zap.String("file", *out), zap.Int("requests", st.Requests), zap.Int("bookings", st.Bookings))
}
