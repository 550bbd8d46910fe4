// Command seed loads the initial catalog of goals, teachers and weekly
// timetables into the store named by DATABASE_URL.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/app"
	"github.com/iliyamo/tutor-booking/internal/config"
	"github.com/iliyamo/tutor-booking/internal/database"
	"github.com/iliyamo/tutor-booking/internal/seed"
)

func main() {
	file := flag.String("file", "", "yaml dataset to load instead of the embedded one")
	force := flag.Bool("force", false, "wipe the existing catalog and its bookings first")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	url := os.Getenv("DATABASE_URL")
	logger := app.NewLogger(os.Getenv("APP_ENV"))
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := database.Open(ctx, url)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if _, err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	ds, err := loadDataset(*file)
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}

	st, err := seed.NewSeeder(db.DB, logger).Seed(ctx, ds, *force)
	if errors.Is(err, seed.ErrNotEmpty) {
		logger.Warn("catalog already present, use -force to replace it")
		return
	}
	if err != nil {
		logger.Fatal("seed", zap.Error(err))
	}
	logger.Info("done", zap.Int("goals", st.Goals), zap.Int("teachers", st.Teachers), zap.Int("slots", st.Slots))
}

func loadDataset(path string) (*seed.Dataset, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Load(f)
}
