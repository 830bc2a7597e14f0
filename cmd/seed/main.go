// Command seed applies the schema and inserts development data.
//
// Usage:
//
//	seed            # sample household only, when the database is empty
//	seed -fake 50   # plus 50 generated users with households and transactions
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/sdg1/budgetcoach/internal/app"
	"github.com/sdg1/budgetcoach/internal/config"
	"github.com/sdg1/budgetcoach/internal/seed"
	"github.com/sdg1/budgetcoach/pkg/logging"
)

func main() {
	fake := flag.Int("fake", 0, "number of generated users to add")
	fakeSeed := flag.Int64("seed", 0, "random seed for generated data (0 picks one)")
	flag.Parse()

	logger := logging.Setup()
	cfg := config.Load(logger)
	ctx := context.Background()

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if _, err := seed.Sample(ctx, store, logger); err != nil {
		slog.Error("Failed to insert sample data", "error", err)
		os.Exit(1)
	}

	if *fake > 0 {
		s := *fakeSeed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		if _, err := seed.Fake(ctx, store, gofakeit.New(s), *fake, logger); err != nil {
			slog.Error("Failed to insert fake data", "error", err)
			os.Exit(1)
		}
	}
}
