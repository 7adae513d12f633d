package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Rakhulsr/wishcrate/app/configs"
	"github.com/Rakhulsr/wishcrate/app/db/seeders"
	"github.com/Rakhulsr/wishcrate/app/models/migrations"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads configuration and builds the logger every command needs.
func bootstrap() (configs.ENV, *zap.Logger, error) {
	env, err := configs.LoadEnv()
	if err != nil {
		return configs.ENV{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := configs.NewLogger(env)
	if err != nil {
		return configs.ENV{}, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return env, logger, nil
}

func withDatabase(action func(ctx context.Context, env configs.ENV, logger *zap.Logger, db *gorm.DB) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		env, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := configs.OpenConnection(env, logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return action(ctx, env, logger, db)
	}
}

func RunCli() {
	cmd := &cli.Command{
		Name:   "wishcrate",
		Usage:  "WishCrate storefront API",
		Action: withDatabase(serve),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API server",
				Action: withDatabase(serve),
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: withDatabase(func(ctx context.Context, env configs.ENV, logger *zap.Logger, db *gorm.DB) error {
					if err := migrations.AutoMigrate(db.WithContext(ctx)); err != nil {
						return err
					}
					logger.Info("migration complete")
					return nil
				}),
			},
			{
				Name:  "seed",
				Usage: "Fill the database with fake catalog data and accounts",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "customers", Value: int64(seeders.DefaultOptions().Customers), Usage: "number of customer accounts"},
					&cli.IntFlag{Name: "products", Value: int64(seeders.DefaultOptions().ProductsPerCategory), Usage: "products per category"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(func(ctx context.Context, env configs.ENV, logger *zap.Logger, db *gorm.DB) error {
						if err := migrations.AutoMigrate(db.WithContext(ctx)); err != nil {
							return err
						}
						opts := seeders.Options{
							Customers:           int(c.Int("customers")),
							ProductsPerCategory: int(c.Int("products")),
						}
						return seeders.NewSeeder(db, logger).DBSeed(ctx, opts)
					})(ctx, c)
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a new JWT signing secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintKeys()
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
