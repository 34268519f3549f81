// Manual backfill of legacy progress keys.
//
// The progress service rewrites legacy keys on every load, so running this is
// never required. It rewrites the stored rows in place, useful before retiring
// the on-load rewrite or after importing old progress dumps.
//
// Usage: go run scripts/migrate_progress_keys.go

package main

import (
	"encoding/json"
	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/pkg/database"
	"lingua_edu_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	var rows []model.CourseProgress
	if err := db.Find(&rows).Error; err != nil {
		log.Fatalf("loading progress rows failed: %v", err)
	}

	migrated := 0
	for i := range rows {
		var state model.ProgressState
		if len(rows[i].State) > 0 {
			if err := json.Unmarshal(rows[i].State, &state); err != nil {
				log.Printf("row %d: undecodable state, skipping: %v", rows[i].ID, err)
				continue
			}
		}

		normalized := service.NormalizeProgressState(state)
		if len(normalized) == len(state) {
			changed := false
			for key := range state {
				if service.RewriteLegacyKey(key) != key {
					changed = true
					break
				}
			}
			if !changed {
				continue
			}
		}

		encoded, err := json.Marshal(normalized)
		if err != nil {
			log.Printf("row %d: encoding failed, skipping: %v", rows[i].ID, err)
			continue
		}
		rows[i].State = encoded
		if err := db.Save(&rows[i]).Error; err != nil {
			log.Fatalf("row %d: save failed: %v", rows[i].ID, err)
		}
		migrated++
	}

	log.Printf("done: %d of %d rows rewritten", migrated, len(rows))
}
