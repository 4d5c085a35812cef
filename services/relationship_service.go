package services

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"travelcms/constants"
	"travelcms/errors"
	"travelcms/models"
	"travelcms/services/logger"
)

// RelatedKind maps a relationship URL segment to the kind it links.
func RelatedKind(segment string) (models.Kind, bool) {
	switch segment {
	case constants.RelatedPackages:
		return models.KindPackage, true
	case constants.RelatedGroupTrips:
		return models.KindGroupTrip, true
	}
	return "", false
}

// RelationshipService stores owner -> package / group trip links with set
// semantics: assigning twice is a no-op, removing a non-member succeeds.
type RelationshipService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewRelationshipService(db *gorm.DB, log logger.Logger) *RelationshipService {
	return &RelationshipService{db: db, logger: log}
}

func (s *RelationshipService) checkOwner(ctx context.Context, ownerKind models.Kind, ownerID uint) error {
	if !ownerKind.HasRelationships() {
		return errors.NewAppError(errors.ErrCodeInvalidOperation, ownerKind.Label()+" has no relationships", nil)
	}
	return requireEntity(ctx, s.db, ownerKind, ownerID)
}

func (s *RelationshipService) Get(ctx context.Context, ownerKind models.Kind, ownerID uint) (models.Relationships, error) {
	out := models.Relationships{PackageIDs: []uint{}, GroupTripIDs: []uint{}}
	if err := s.checkOwner(ctx, ownerKind, ownerID); err != nil {
		return out, err
	}
	var rows []models.Relationship
	err := s.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", ownerKind, ownerID).
		Order("related_id asc").
		Find(&rows).Error
	if err != nil {
		return out, translateDBError(err, "Relationship")
	}
	for _, r := range rows {
		switch r.RelatedKind {
		case models.KindPackage:
			out.PackageIDs = append(out.PackageIDs, r.RelatedID)
		case models.KindGroupTrip:
			out.GroupTripIDs = append(out.GroupTripIDs, r.RelatedID)
		}
	}
	return out, nil
}

func (s *RelationshipService) Assign(ctx context.Context, ownerKind models.Kind, ownerID uint, relatedKind models.Kind, relatedID uint) (models.Relationships, error) {
	if err := s.checkOwner(ctx, ownerKind, ownerID); err != nil {
		return models.Relationships{}, err
	}
	if err := requireEntity(ctx, s.db, relatedKind, relatedID); err != nil {
		return models.Relationships{}, err
	}
	link := models.Relationship{OwnerKind: ownerKind, OwnerID: ownerID, RelatedKind: relatedKind, RelatedID: relatedID}
	err := s.db.WithContext(ctx).
		Where(&models.Relationship{OwnerKind: ownerKind, OwnerID: ownerID, RelatedKind: relatedKind, RelatedID: relatedID}).
		FirstOrCreate(&link).Error
	if err != nil && !stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return models.Relationships{}, translateDBError(err, "Relationship")
	}
	s.logger.Debug("assigned %s %d -> %s %d", ownerKind, ownerID, relatedKind, relatedID)
	return s.Get(ctx, ownerKind, ownerID)
}

func (s *RelationshipService) Remove(ctx context.Context, ownerKind models.Kind, ownerID uint, relatedKind models.Kind, relatedID uint) (models.Relationships, error) {
	if err := s.checkOwner(ctx, ownerKind, ownerID); err != nil {
		return models.Relationships{}, err
	}
	err := s.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ? AND related_kind = ? AND related_id = ?", ownerKind, ownerID, relatedKind, relatedID).
		Delete(&models.Relationship{}).Error
	if err != nil {
		return models.Relationships{}, translateDBError(err, "Relationship")
	}
	return s.Get(ctx, ownerKind, ownerID)
}

// PurgeEntity drops every link the entity takes part in. It is registered as
// a catalog DeleteHook.
func (s *RelationshipService) PurgeEntity(ctx context.Context, tx *gorm.DB, kind models.Kind, id uint) (func(), error) {
	err := tx.WithContext(ctx).
		Where("(owner_kind = ? AND owner_id = ?) OR (related_kind = ? AND related_id = ?)", kind, id, kind, id).
		Delete(&models.Relationship{}).Error
	return nil, err
}
