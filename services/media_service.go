package services

import (
	"context"
	stderrors "errors"
	"io"

	"gorm.io/gorm"

	"travelcms/dto"
	"travelcms/errors"
	"travelcms/models"
	"travelcms/services/logger"
)

// MediaService manages gallery rows and their stored files.
type MediaService struct {
	db      *gorm.DB
	storage MediaStorage
	cache   *ListCache
	logger  logger.Logger
}

func NewMediaService(db *gorm.DB, storage MediaStorage, cache *ListCache, log logger.Logger) *MediaService {
	return &MediaService{db: db, storage: storage, cache: cache, logger: log}
}

func parseOwnerKind(entityType string) (models.Kind, error) {
	kind, ok := models.ParseKind(entityType)
	if !ok || !kind.HasCover() {
		return "", errors.NewAppError(errors.ErrCodeValidation, "unsupported entity_type "+entityType, errors.ErrUnsupportedKind)
	}
	return kind, nil
}

// List returns an entity's gallery in upload order.
func (s *MediaService) List(ctx context.Context, entityType string, entityID uint) ([]models.Media, error) {
	kind, err := parseOwnerKind(entityType)
	if err != nil {
		return nil, err
	}
	items := []models.Media{}
	err = s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", kind, entityID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, translateDBError(err, "Media")
	}
	return items, nil
}

func (s *MediaService) Get(ctx context.Context, id uint) (models.Media, error) {
	var m models.Media
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return m, errors.NotFound("Media", errors.ErrMediaNotFound)
		}
		return m, translateDBError(err, "Media")
	}
	return m, nil
}

// Upload stores the file and records it in the owner's gallery.
func (s *MediaService) Upload(ctx context.Context, form dto.MediaUploadForm, filename string, file io.Reader) (models.Media, error) {
	kind, err := parseOwnerKind(form.EntityType)
	if err != nil {
		return models.Media{}, err
	}
	if err := requireEntity(ctx, s.db, kind, form.EntityID); err != nil {
		return models.Media{}, err
	}
	filePath, err := s.storage.Save(ctx, string(kind), filename, file)
	if err != nil {
		s.logger.Error("store %s for %s %d: %v", filename, kind, form.EntityID, err)
		return models.Media{}, errors.NewAppError(errors.ErrCodeStorage, "could not store file", err)
	}
	m := models.Media{EntityType: kind, EntityID: form.EntityID, FilePath: filePath}
	if form.AltText != "" {
		m.AltText = &form.AltText
	}
	if form.Caption != "" {
		m.Caption = &form.Caption
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		s.removeFile(ctx, filePath)
		return models.Media{}, translateDBError(err, "Media")
	}
	s.logger.Info("uploaded media %d for %s %d", m.ID, kind, m.EntityID)
	return m, nil
}

func (s *MediaService) Update(ctx context.Context, id uint, req dto.UpdateMediaRequest) (models.Media, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return m, err
	}
	req.ApplyTo(&m)
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return m, translateDBError(err, "Media")
	}
	return m, nil
}

// Delete removes the media row and, in the same transaction, clears the
// owner's cover reference when it pointed at this image. The stored file is
// removed afterwards, best effort.
func (s *MediaService) Delete(ctx context.Context, id uint) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Media{}, m.ID).Error; err != nil {
			return err
		}
		return clearCover(tx, m.EntityType, m.EntityID, m.ID)
	})
	if err != nil {
		return translateDBError(err, "Media")
	}
	s.cache.Invalidate(ctx, m.EntityType)
	s.removeFile(ctx, m.FilePath)
	return nil
}

// PurgeEntity deletes the gallery of a deleted entity. It is registered as a
// catalog DeleteHook; the stored files are removed once the delete commits.
func (s *MediaService) PurgeEntity(ctx context.Context, tx *gorm.DB, kind models.Kind, id uint) (func(), error) {
	var items []models.Media
	if err := tx.WithContext(ctx).Where("entity_type = ? AND entity_id = ?", kind, id).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	if err := tx.WithContext(ctx).Where("entity_type = ? AND entity_id = ?", kind, id).Delete(&models.Media{}).Error; err != nil {
		return nil, err
	}
	return func() {
		for _, m := range items {
			s.removeFile(ctx, m.FilePath)
		}
	}, nil
}

func (s *MediaService) removeFile(ctx context.Context, filePath string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Remove(ctx, filePath); err != nil {
		s.logger.Error("remove stored file %s: %v", filePath, err)
	}
}

// clearCover nulls the owner's cover_image_id when it equals mediaID.
func clearCover(tx *gorm.DB, kind models.Kind, ownerID, mediaID uint) error {
	if !kind.HasCover() {
		return nil
	}
	return tx.Model(models.New(kind)).
		Where("id = ? AND cover_image_id = ?", ownerID, mediaID).
		UpdateColumn("cover_image_id", nil).Error
}
