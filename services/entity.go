package services

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"travelcms/errors"
	"travelcms/models"
)

// translateDBError maps gorm errors onto AppError codes.
func translateDBError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFound(what, err)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.NewAppError(errors.ErrCodeDBDuplicate, what+" already exists", err)
	}
	return errors.NewAppError(errors.ErrCodeDBError, "database error", err)
}

// entityExists reports whether a row of the given kind has the given id.
func entityExists(ctx context.Context, db *gorm.DB, kind models.Kind, id uint) (bool, error) {
	model := models.New(kind)
	if model == nil {
		return false, errors.NewAppError(errors.ErrCodeValidation, "unknown entity type "+string(kind), errors.ErrUnsupportedKind)
	}
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateDBError(err, kind.Label())
	}
	return count > 0, nil
}

// requireEntity returns a not found AppError when the row is missing.
func requireEntity(ctx context.Context, db *gorm.DB, kind models.Kind, id uint) error {
	ok, err := entityExists(ctx, db, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFound(kind.Label(), errors.ErrEntityNotFound)
	}
	return nil
}
