package migrations

import (
	"github.com/Anaselll/TeachMeApp/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250104_create_messages_table",
		Name: "Create messages table ordered by sequence",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS messages (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					seq         BIGSERIAL NOT NULL UNIQUE,
					session_id  UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
					sender_id   UUID NOT NULL REFERENCES users(id),
					receiver_id UUID NOT NULL REFERENCES users(id),
					content     TEXT NOT NULL CHECK (length(btrim(content)) > 0),
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_messages_session_seq
				ON messages (session_id, seq);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS messages;`).Error
		},
	})
}
