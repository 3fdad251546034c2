package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"smdb/pkg/config"
	"smdb/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	var (
		dir  string
		down bool
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.BoolVar(&down, "down", false, "Roll back every applied migration")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		logger.Error("migrations need the postgres driver", "driver", cfg.DB.Driver)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		logger.Error("cannot connect to db", "error", err)
		os.Exit(1)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("cannot get db instance", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	direction, name := migrate.Up, "up"
	if down {
		direction, name = migrate.Down, "down"
	}

	total, err := migrate.Exec(sqlDB, "postgres", migrations, direction)
	if err != nil {
		logger.Error("cannot execute migration", "direction", name, "error", err)
		os.Exit(1)
	}

	logger.Info("applied migrations", "direction", name, "total", total)
}
