package app

import (
	"context"
	"fmt"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/config"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"go.uber.org/zap"
)

// RunSeed loads the rubric seed (the configured file or the embedded
// default), reports missing criteria and, unless dryRun, stores it.
func RunSeed(ctx context.Context, cfg *config.Config, logger *zap.Logger, dryRun bool) error {
	log := logger.Named("app.seed")

	var (
		seed rubric.SeedResult
		err  error
	)
	if cfg.RubricSeedPath != "" {
		seed, err = rubric.LoadSeedFile(cfg.RubricSeedPath)
	} else {
		seed, err = rubric.DefaultSeed()
	}
	if err != nil {
		return fmt.Errorf("load rubric seed: %w", err)
	}

	for _, m := range seed.Missing {
		log.Warn("rubric criterion missing",
			zap.String("position_id", string(m.Position)),
			zap.String("pillar", m.Pillar),
			zap.Int("level", m.Level),
		)
	}
	log.Info("rubric seed parsed", zap.Int("missing", len(seed.Missing)), zap.Bool("dry_run", dryRun))
	if dryRun {
		return nil
	}

	in, err := Connect(cfg, logger, true)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := Migrate(ctx, in.GormDB); err != nil {
		return err
	}

	n, err := storeSeed(ctx, in, rubric.NewRepository(in.GormDB), seed.Catalog)
	if err != nil {
		return fmt.Errorf("store rubric seed: %w", err)
	}
	log.Info("rubric seed stored", zap.Int("criteria", n))
	return nil
}

// storeSeed upserts catalog through the rubric service, which drops the
// cached rubric of every seeded position so running APIs see the new text.
func storeSeed(ctx context.Context, in *Infra, repo rubric.Repository, catalog *rubric.Catalog) (int, error) {
	svc := rubric.NewService(in.SQLDB, repo, in.Redis, in.Metrics, in.Logger)
	return svc.Seed(ctx, catalog)
}
