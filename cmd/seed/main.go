// Command seed loads a YAML fixture of movies, users and cinemas into MongoDB.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
	mongodao "github.com/jrjohn/moviedb-api/internal/domain/dao/mongo"
	"github.com/jrjohn/moviedb-api/internal/seed"
	"github.com/jrjohn/moviedb-api/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	file := fs.StringP("file", "f", "fixtures/moviedb.yaml", "fixture to load")
	drop := fs.Bool("drop", false, "drop the users, movies and cinemas collections first")
	dryRun := fs.Bool("dry-run", false, "validate the fixture without connecting")
	configFile := fs.String("config", "", "config file (default: search ./config.yaml, ./config/config.yaml)")
	fs.String("database.name", "", "database name override")
	fs.String("database.uri", "", "connection string override")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loader := config.NewLoader()
	if *configFile != "" {
		loader.SetConfigFile(*configFile)
	}
	for _, key := range []string{"database.name", "database.uri"} {
		if !fs.Changed(key) {
			continue
		}
		if err := loader.BindFlags(flagSubset(fs, key)); err != nil {
			return err
		}
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.Debug,
		Encoding:    cfg.Log.Encoding,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = logger.ForComponent(log, "seed")

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	fixture, err := seed.Decode(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := seed.Build(ctx, fixture, time.Now())
	if err != nil {
		return err
	}
	log.Info("Fixture is valid",
		zap.String("file", *file),
		zap.Int("movies", len(ds.Movies)),
		zap.Int("users", len(ds.Users)),
		zap.Int("cinemas", len(ds.Cinemas)),
	)
	if *dryRun {
		return nil
	}

	client, err := mongodao.Connect(ctx, cfg.Database, nil, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.Database.Name)

	if *drop {
		for _, name := range []string{mongodao.UsersCollection, mongodao.MoviesCollection, mongodao.CinemasCollection} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("failed to drop %s: %w", name, err)
			}
			log.Info("Dropped collection", zap.String(logger.FieldCollection, name))
		}
	}
	if err := mongodao.EnsureIndexes(ctx, db, log); err != nil {
		return err
	}

	seeder := seed.NewSeeder(
		mongodao.NewUserDAO(db),
		mongodao.NewMovieDAO(db),
		mongodao.NewCinemaDAO(db),
		log,
	)
	_, err = seeder.Seed(ctx, ds)
	return err
}

// flagSubset returns a set holding only the named flag, so unrelated flags
// never reach the config keyspace.
func flagSubset(fs *pflag.FlagSet, name string) *pflag.FlagSet {
	sub := pflag.NewFlagSet(fs.Name(), pflag.ContinueOnError)
	sub.AddFlag(fs.Lookup(name))
	return sub
}
