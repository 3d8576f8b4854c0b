package config

import (
	"errors"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
)

// MigratePostgres creates the pgvector extension and the app tables.
func MigratePostgres() error {
	if PostgresDB == nil {
		return errors.New("PostgresDB is nil; call InitPostgres() first")
	}

	if err := PostgresDB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}

	return PostgresDB.AutoMigrate(
		&models.Entry{},
		&models.UserProfile{},
	)
}
