// Command seeduser creates the first administrator account so the back office
// can be logged into on a fresh database.
//
//	go run ./cmd/seeduser -username admin -email admin@example.com -password secret123
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/muhammadjayadi/larastore-management/internal/config"
	"github.com/muhammadjayadi/larastore-management/internal/infra"
	"github.com/muhammadjayadi/larastore-management/internal/model"
	"github.com/muhammadjayadi/larastore-management/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	name := flag.String("name", "Administrator", "display name")
	username := flag.String("username", "admin", "login username")
	email := flag.String("email", "admin@example.com", "email address")
	password := flag.String("password", "", "initial password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.FindByLogin(ctx, *username); err == nil {
		log.Info().Str("username", *username).Msg("user already exists, nothing to do")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("hashing failed")
	}

	u := &model.User{
		Name:         *name,
		Username:     *username,
		Email:        *email,
		Roles:        []string{model.RoleAdmin},
		Status:       model.StatusActive,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("create failed")
	}
	log.Info().Str("id", u.ID.String()).Str("username", u.Username).Msg("administrator created")
}
