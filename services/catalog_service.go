package services

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"travelcms/constants"
	"travelcms/dto"
	"travelcms/errors"
	"travelcms/models"
	"travelcms/services/logger"
)

// Entity constrains PT to the pointer type of a catalog model T.
type Entity[T any] interface {
	*T
	models.Record
}

// DeleteHook runs inside the delete transaction of an entity. The returned
// func, when not nil, runs only after the transaction has committed.
type DeleteHook func(ctx context.Context, tx *gorm.DB, kind models.Kind, id uint) (func(), error)

// CatalogConfig describes one kind's list filters and write checks.
type CatalogConfig[T any] struct {
	Kind models.Kind
	// Filters are the query parameters matched by equality against the
	// column of the same name.
	Filters []string
	// DateRange enables start_date/end_date range filtering.
	DateRange bool
	// Check runs after a create payload is built or a patch is applied.
	Check func(*T) error
}

// CatalogService is the gorm backed store of one entity kind.
type CatalogService[T any, PT Entity[T]] struct {
	db       *gorm.DB
	cache    *ListCache
	logger   logger.Logger
	cfg      CatalogConfig[T]
	onDelete []DeleteHook
}

func NewCatalogService[T any, PT Entity[T]](db *gorm.DB, cache *ListCache, log logger.Logger, cfg CatalogConfig[T]) *CatalogService[T, PT] {
	return &CatalogService[T, PT]{db: db, cache: cache, logger: log, cfg: cfg}
}

func (s *CatalogService[T, PT]) Kind() models.Kind {
	return s.cfg.Kind
}

// OnDelete registers cleanup that runs in the same transaction as Delete.
func (s *CatalogService[T, PT]) OnDelete(hook DeleteHook) {
	s.onDelete = append(s.onDelete, hook)
}

func (s *CatalogService[T, PT]) label() string {
	return s.cfg.Kind.Label()
}

// ParseListQuery reads the kind's filters and paging from raw query values.
func (s *CatalogService[T, PT]) ParseListQuery(get func(string) string) (dto.ListQuery, error) {
	q := dto.ListQuery{Filters: map[string]string{}, Limit: constants.DefaultPageLimit}
	for _, name := range s.cfg.Filters {
		v := strings.TrimSpace(get(name))
		if v == "" {
			continue
		}
		if name == "is_active" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "is_active must be true or false", err)
			}
			v = strconv.FormatBool(b)
		} else if strings.HasSuffix(name, "_id") {
			if _, err := strconv.ParseUint(v, 10, 64); err != nil {
				return q, errors.NewAppError(errors.ErrCodeInvalidFormat, name+" must be a positive integer", err)
			}
		}
		q.Filters[name] = v
	}
	if s.cfg.DateRange {
		q.StartDate = get("start_date")
		q.EndDate = get("end_date")
	}
	q.Query = strings.TrimSpace(get("q"))
	if v := get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "skip must be a non-negative integer", errors.ErrInvalidFormat)
		}
		q.Skip = n
	}
	if v := get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "limit must be a positive integer", errors.ErrInvalidFormat)
		}
		if n > constants.MaxPageLimit {
			n = constants.MaxPageLimit
		}
		q.Limit = n
	}
	return q, nil
}

func (s *CatalogService[T, PT]) filtered(ctx context.Context, q dto.ListQuery) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(PT(new(T)))
	for name, v := range q.Filters {
		if name == "is_active" {
			tx = tx.Where(name+" = ?", v == "true")
			continue
		}
		tx = tx.Where(name+" = ?", v)
	}
	if q.StartDate != "" {
		tx = tx.Where("start_date >= ?", q.StartDate)
	}
	if q.EndDate != "" {
		tx = tx.Where("end_date <= ?", q.EndDate)
	}
	return tx
}

// List returns one page of matching rows and the total match count. A q
// parameter switches to fuzzy name matching, best match first.
func (s *CatalogService[T, PT]) List(ctx context.Context, q dto.ListQuery) ([]T, int64, error) {
	key := q.Key()
	var page ListPage[T]
	if s.cache.Get(ctx, s.cfg.Kind, key, &page) {
		return page.Items, page.Total, nil
	}

	items := []T{}
	var total int64
	if q.Query != "" {
		var all []T
		if err := s.filtered(ctx, q).Order("id asc").Find(&all).Error; err != nil {
			return nil, 0, translateDBError(err, s.label())
		}
		matched := FuzzyFilter(all, func(m *T) string { return PT(m).SlugSource() }, q.Query)
		total = int64(len(matched))
		items = window(matched, q.Skip, q.Limit)
	} else {
		if err := s.filtered(ctx, q).Count(&total).Error; err != nil {
			return nil, 0, translateDBError(err, s.label())
		}
		if err := s.filtered(ctx, q).Order("updated_at desc").Order("id desc").
			Offset(q.Skip).Limit(q.Limit).Find(&items).Error; err != nil {
			return nil, 0, translateDBError(err, s.label())
		}
	}

	s.cache.Set(ctx, s.cfg.Kind, key, ListPage[T]{Items: items, Total: total})
	return items, total, nil
}

func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}

func (s *CatalogService[T, PT]) Get(ctx context.Context, id uint) (T, error) {
	var m T
	if err := s.db.WithContext(ctx).First(PT(&m), id).Error; err != nil {
		return m, translateDBError(err, s.label())
	}
	return m, nil
}

func (s *CatalogService[T, PT]) GetBySlug(ctx context.Context, slug string) (T, error) {
	var m T
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(PT(&m)).Error; err != nil {
		return m, translateDBError(err, s.label())
	}
	return m, nil
}

// Create assigns a unique slug derived from the model's name and inserts it.
func (s *CatalogService[T, PT]) Create(ctx context.Context, m *T) error {
	if s.cfg.Check != nil {
		if err := s.cfg.Check(m); err != nil {
			return err
		}
	}
	meta := PT(m).Meta()
	meta.ID = 0
	slug, err := UniqueSlug(ctx, s.db, PT(new(T)), Slugify(PT(m).SlugSource()), 0)
	if err != nil {
		return translateDBError(err, s.label())
	}
	meta.Slug = slug
	if err := s.db.WithContext(ctx).Create(PT(m)).Error; err != nil {
		return translateDBError(err, s.label())
	}
	s.logger.Info("created %s %d (%s)", s.cfg.Kind, meta.ID, meta.Slug)
	s.cache.Invalidate(ctx, s.cfg.Kind)
	return nil
}

// Update applies a partial payload. The slug is kept.
func (s *CatalogService[T, PT]) Update(ctx context.Context, id uint, patch dto.Patcher[T]) (T, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return m, err
	}
	patch.ApplyTo(&m)
	if s.cfg.Check != nil {
		if err := s.cfg.Check(&m); err != nil {
			return m, err
		}
	}
	PT(&m).Meta().ID = id
	if err := s.db.WithContext(ctx).Save(PT(&m)).Error; err != nil {
		return m, translateDBError(err, s.label())
	}
	s.cache.Invalidate(ctx, s.cfg.Kind)
	return m, nil
}

// Delete removes the row and runs the registered cleanup in one transaction.
func (s *CatalogService[T, PT]) Delete(ctx context.Context, id uint) error {
	var committed []func()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(PT(new(T)), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound(s.label(), errors.ErrEntityNotFound)
		}
		for _, hook := range s.onDelete {
			after, err := hook(ctx, tx, s.cfg.Kind, id)
			if err != nil {
				return err
			}
			if after != nil {
				committed = append(committed, after)
			}
		}
		return nil
	})
	if err != nil {
		return translateDBError(err, s.label())
	}
	for _, after := range committed {
		after()
	}
	s.logger.Info("deleted %s %d", s.cfg.Kind, id)
	s.cache.Invalidate(ctx, s.cfg.Kind)
	return nil
}

// SetCover points the entity's cover at one of its own gallery images, or
// clears it when imageID is nil.
func (s *CatalogService[T, PT]) SetCover(ctx context.Context, id uint, imageID *uint) (T, error) {
	var zero T
	if !s.cfg.Kind.HasCover() {
		return zero, errors.NewAppError(errors.ErrCodeInvalidOperation, s.label()+" has no cover image", nil)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return zero, err
	}
	if imageID != nil {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Media{}).
			Where("id = ? AND entity_type = ? AND entity_id = ?", *imageID, s.cfg.Kind, id).
			Count(&count).Error
		if err != nil {
			return zero, translateDBError(err, "Media")
		}
		if count == 0 {
			return zero, errors.NewAppError(errors.ErrCodeValidation, errors.ErrForeignMedia.Error(), errors.ErrForeignMedia)
		}
	}
	err := s.db.WithContext(ctx).Model(PT(new(T))).Where("id = ?", id).
		UpdateColumn("cover_image_id", imageID).Error
	if err != nil {
		return zero, translateDBError(err, s.label())
	}
	s.cache.Invalidate(ctx, s.cfg.Kind)
	return s.Get(ctx, id)
}
