package gormrepo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"liftlog/internal/domain"
)

// Open connects to the sqlite database at path and runs auto-migration for
// every core model. An empty path falls back to liftlog.db.
func Open(path string) (*gorm.DB, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		p = "liftlog.db"
	}

	if err := ensureParentDir(p); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(p), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all core models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Day{},
		&domain.Exercise{},
		&domain.Split{},
		&domain.SplitDay{},
		&domain.SplitRun{},
		&domain.DayOverride{},
		&domain.Workout{},
		&domain.WorkoutExercise{},
		&domain.Log{},
		&domain.Bodyweight{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
