package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/kintai-app/kintai/model"
)

// RemoteStore is the MySQL-backed Remote. One row per (user, document);
// the doc_id column is the document key and carries the record id.
type RemoteStore struct {
	db *gorm.DB
}

func OpenRemote(dsn string, maxConnection int) (*RemoteStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open remote db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&model.AttendanceDocument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate remote schema: %w", err)
	}
	return &RemoteStore{db: db}, nil
}

func (s *RemoteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load reads the user's whole collection. The record id is taken from the
// document key, which is how a provisional local id gets replaced after
// the first successful load.
func (s *RemoteStore) Load(ctx context.Context, userID string) (model.RecordSet, error) {
	var docs []model.AttendanceDocument
	if err := s.db.WithContext(ctx).
		Where(&model.AttendanceDocument{UserID: userID}).
		Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to load attendance documents: %w", err)
	}

	set := make(model.RecordSet, 0, len(docs))
	for _, d := range docs {
		rec := &model.AttendanceRecord{
			ID:       d.DocID,
			Date:     d.Date,
			ClockIn:  d.ClockIn,
			ClockOut: d.ClockOut,
			Breaks:   []model.BreakInterval{},
		}
		if d.Breaks != "" {
			var breaks []model.BreakInterval
			if err := json.Unmarshal([]byte(d.Breaks), &breaks); err == nil {
				rec.Breaks = breaks
			}
		}
		set = append(set, rec)
	}
	return set, nil
}

// Upsert writes one record keyed by (user, record id) with merge
// semantics: only the value columns are overwritten on conflict.
func (s *RemoteStore) Upsert(ctx context.Context, userID string, rec *model.AttendanceRecord) error {
	breaks, err := json.Marshal(rec.Breaks)
	if err != nil {
		return fmt.Errorf("failed to encode breaks: %w", err)
	}

	doc := model.AttendanceDocument{
		UserID:   userID,
		DocID:    rec.ID,
		Date:     rec.Date,
		ClockIn:  rec.ClockIn,
		ClockOut: rec.ClockOut,
		Breaks:   string(breaks),
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "clock_in", "clock_out", "breaks"}),
	}).Create(&doc).Error; err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", rec.ID, err)
	}
	return nil
}
