// Package sqlite persists session entries in a local sqlite file, the
// console's stand-in for browser local storage.
package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chemstack/chemconsole/internal/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (Entry) TableName() string {
	return "session_entries"
}

type Store struct {
	db *gorm.DB
}

// NewStore opens (creating if needed) the session database at path.
func NewStore(path string) (session.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	var entry Entry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *Store) Set(key, value string) error {
	return s.db.Save(&Entry{Key: key, Value: value}).Error
}

func (s *Store) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Where("key IN ?", keys).Delete(&Entry{}).Error
}
