package main

import (
	"context"
	"flag"
	"os"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ems/internal/config"
	"ems/internal/logger"
)

func main() {
	schemaPath := flag.String("schema", "database.sql", "path to the schema file")
	adminEmail := flag.String("admin-email", "admin@ems.local", "email of the seeded administrator")
	flag.Parse()

	cfg, _, err := config.Load()
	log, logErr := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	if logErr != nil {
		panic(logErr)
	}
	defer log.Sync()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("unable to connect to database", zap.Error(err))
	}
	defer conn.Close(ctx)

	log.Info("connected to database", zap.String("db", cfg.Database.Name))

	var regclass *string
	if err := conn.QueryRow(ctx, `SELECT to_regclass('public.users')`).Scan(&regclass); err != nil {
		log.Fatal("error checking schema state", zap.Error(err))
	}

	if regclass == nil {
		sqlFile, err := os.ReadFile(*schemaPath)
		if err != nil {
			log.Fatal("error reading schema", zap.String("path", *schemaPath), zap.Error(err))
		}
		if _, err := conn.Exec(ctx, string(sqlFile)); err != nil {
			log.Fatal("error executing schema", zap.Error(err))
		}
		log.Info("schema created")
	} else {
		log.Info("schema already exists, skipping schema creation")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "12345"
		log.Warn("ADMIN_PASSWORD not set, seeding the default administrator password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("error hashing administrator password", zap.Error(err))
	}

	_, err = conn.Exec(ctx,
		`INSERT INTO users (email, password_hash, name, role, status, department, position, hired_at)
		VALUES ($1, $2, 'Administrator', 'ADMIN', 'active', 'HR', 'HR Manager', now())
		ON CONFLICT (email) DO NOTHING`,
		*adminEmail, string(hash))
	if err != nil {
		log.Fatal("error inserting initial data", zap.Error(err))
	}
	log.Info("initial data inserted", zap.String("admin", *adminEmail))
}
