package migrations

import (
	"github.com/Anaselll/TeachMeApp/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250103_create_sessions_table",
		Name: "Create sessions table with one session per offer",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS sessions (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					offer_id        UUID NOT NULL REFERENCES offers(id),
					student_id      UUID NOT NULL REFERENCES users(id),
					tutor_id        UUID NOT NULL REFERENCES users(id),
					status          TEXT NOT NULL DEFAULT 'scheduled'
						CHECK (status IN ('scheduled', 'completed', 'canceled')),
					scheduled_start TIMESTAMPTZ NOT NULL,
					scheduled_end   TIMESTAMPTZ NOT NULL,
					student_ready   BOOLEAN NOT NULL DEFAULT FALSE,
					tutor_ready     BOOLEAN NOT NULL DEFAULT FALSE,
					chat_active     BOOLEAN NOT NULL DEFAULT FALSE,
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CHECK (student_id <> tutor_id),
					CHECK (scheduled_end >= scheduled_start)
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_offer_id
				ON sessions (offer_id);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_sessions_student_status
				ON sessions (student_id, status);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_sessions_tutor_status
				ON sessions (tutor_id, status);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS sessions;`).Error
		},
	})
}
