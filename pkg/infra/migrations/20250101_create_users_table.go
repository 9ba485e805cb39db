package migrations

import (
	"github.com/Anaselll/TeachMeApp/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250101_create_users_table",
		Name: "Create users table",

		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					email       TEXT NOT NULL UNIQUE,
					full_name   TEXT NOT NULL,
					role        TEXT NOT NULL DEFAULT 'student'
						CHECK (role IN ('student', 'tutor', 'both')),
					profile_pic TEXT NOT NULL DEFAULT '',
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS users;`).Error
		},
	})
}
