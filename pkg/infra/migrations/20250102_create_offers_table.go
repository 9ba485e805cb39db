package migrations

import (
	"github.com/Anaselll/TeachMeApp/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250102_create_offers_table",
		Name: "Create offers table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS offers (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					owner_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					subject     TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					price       NUMERIC(10, 2) NOT NULL DEFAULT 0,
					date        TIMESTAMPTZ,
					dure        INTEGER NOT NULL DEFAULT 1,
					status      TEXT NOT NULL DEFAULT 'open'
						CHECK (status IN ('open', 'accepted')),
					accepted_by UUID REFERENCES users(id),
					tags        JSONB,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_offers_status
				ON offers (status);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS offers;`).Error
		},
	})
}
