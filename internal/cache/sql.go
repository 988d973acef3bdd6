package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is a cached response row.
type Record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Response  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "cached_responses"
}

// SQLStore is a Store persisted through gorm.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an open database. The Record table must already be
// migrated.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Response, true, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, response string) error {
	rec := Record{Key: key, Response: response}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

func (s *SQLStore) Purge(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&Record{}).Error
}

func (s *SQLStore) Len(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Record{}).Count(&n).Error
	return n, err
}
