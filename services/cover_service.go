package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"travelcms/models"
	"travelcms/services/logger"
)

// CoverService maintains cover_image_id references across kinds.
type CoverService struct {
	db     *gorm.DB
	cache  *ListCache
	logger logger.Logger
}

func NewCoverService(db *gorm.DB, cache *ListCache, log logger.Logger) *CoverService {
	return &CoverService{db: db, cache: cache, logger: log}
}

// RepairCoverReferences clears every cover id that points at a missing media
// row or at media owned by another entity. It returns the number of rows fixed.
func (s *CoverService) RepairCoverReferences(ctx context.Context) (int64, error) {
	var fixed int64
	for _, kind := range models.Kinds() {
		if !kind.HasCover() {
			continue
		}
		stmt := &gorm.Statement{DB: s.db}
		if err := stmt.Parse(models.New(kind)); err != nil {
			return fixed, fmt.Errorf("parse %s: %w", kind, err)
		}
		table := stmt.Schema.Table
		orphan := s.db.Model(&models.Media{}).Select("1").
			Where("media.id = " + table + ".cover_image_id AND media.entity_type = ? AND media.entity_id = " + table + ".id", kind)
		res := s.db.WithContext(ctx).Model(models.New(kind)).
			Where("cover_image_id IS NOT NULL AND NOT EXISTS (?)", orphan).
			UpdateColumn("cover_image_id", nil)
		if res.Error != nil {
			return fixed, fmt.Errorf("repair %s covers: %w", kind, res.Error)
		}
		if res.RowsAffected > 0 {
			s.logger.Info("cleared %d dangling %s covers", res.RowsAffected, kind)
			s.cache.Invalidate(ctx, kind)
		}
		fixed += res.RowsAffected
	}
	return fixed, nil
}
