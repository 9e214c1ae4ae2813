package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// fixture mirrors fixtures/rooms.json: hotels with their rooms, keyed
// by explicit ids so reruns upsert instead of duplicating.
type fixture struct {
	Hotels []struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Image string `json:"image"`
		Rooms []struct {
			ID       int64  `json:"id"`
			Name     string `json:"name"`
			Capacity int    `json:"capacity"`
		} `json:"rooms"`
	} `json:"hotels"`
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, h := range fx.Hotels {
		// parent row first, so room inserts satisfy the FK
		if err := repo.UpsertHotel(ctx, domain.Hotel{ID: h.ID, Name: h.Name, Image: h.Image}); err != nil {
			log.Fatal().Err(err).Int64("hotel", h.ID).Msg("upsert hotel failed")
		}

		for _, rm := range h.Rooms {
			room := domain.Room{ID: rm.ID, Name: rm.Name, Capacity: rm.Capacity, HotelID: h.ID}

			// acquire before launching the goroutine; release inside it
			if err := sem.Acquire(ctx, 1); err != nil {
				log.Fatal().Err(err).Msg("semaphore acquire failed")
			}

			wg.Add(1)
			go func(room domain.Room) {
				defer wg.Done()
				defer sem.Release(1)

				if err := repo.UpsertRoom(ctx, room); err != nil {
					log.Warn().Int64("room", room.ID).Err(err).Msg("upsert room failed")
					return
				}
				log.Info().Int64("room", room.ID).Int("capacity", room.Capacity).Msg("room ok")
			}(room)
		}
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
