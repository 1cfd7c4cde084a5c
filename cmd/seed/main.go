// Command seed applies the database schema and optionally inserts demo
// accounts for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"telegram-dating-bot/internal/config"
	"telegram-dating-bot/internal/domain/model"
	"telegram-dating-bot/internal/domain/ports/repository"
	pg "telegram-dating-bot/internal/infra/db/postgres"
	"telegram-dating-bot/internal/infra/logging"
)

type demoAccount struct {
	tgID     int64
	name     string
	gender   model.Gender
	age      int
	bio      string
	location string
}

var demoAccounts = []demoAccount{
	{1001, "alice_demo", model.GenderFemale, 25, "Coffee, climbing, bad puns.", "Berlin"},
	{1002, "bob_demo", model.GenderMale, 28, "Amateur chef, professional eater.", "Berlin"},
	{1003, "carol_demo", model.GenderFemale, 31, "Ask me about my bookshelf.", "Hamburg"},
	{1004, "dave_demo", model.GenderMale, 23, "Guitarist looking for a duet.", "Munich"},
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	withDemo := flag.Bool("demo", false, "insert demo accounts after applying the schema")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}
	log.Info().Msg("schema applied")

	if !*withDemo {
		return
	}

	users := pg.NewPostgresUserRepo(pool)
	profiles := pg.NewPostgresProfileRepo(pool)
	for _, d := range demoAccounts {
		u, err := model.NewUser("", d.tgID, d.name, "")
		if err != nil {
			log.Fatal().Err(err).Str("name", d.name).Msg("build demo user")
		}
		if existing, err := users.FindByTelegramID(ctx, repository.NoTX, d.tgID); err == nil {
			log.Info().Str("name", existing.Name).Msg("demo user already present, skipping")
			continue
		}
		if err := users.Save(ctx, repository.NoTX, u); err != nil {
			log.Fatal().Err(err).Str("name", d.name).Msg("save demo user")
		}
		p := &model.Profile{
			UserID:   u.ID,
			Gender:   d.gender,
			Age:      d.age,
			Bio:      d.bio,
			PhotoID:  "demo-photo-" + d.name,
			Location: d.location,
		}
		if err := profiles.Save(ctx, repository.NoTX, p); err != nil {
			log.Fatal().Err(err).Str("name", d.name).Msg("save demo profile")
		}
		log.Info().Str("name", d.name).Msg("demo account created")
	}
}
