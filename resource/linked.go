package resource

import (
	"context"
	"fmt"
	"net/http"

	"travelcms/client"
	"travelcms/constants"
	"travelcms/models"
)

// Linked is a resource whose entities own package and group trip links.
type Linked[T any] struct {
	*Resource[T]
}

func NewLinked[T any](c *client.Client, cfg Config) *Linked[T] {
	return &Linked[T]{Resource: New[T](c, cfg)}
}

func relationshipSegment(kind models.Kind) (string, error) {
	switch kind {
	case models.KindPackage:
		return constants.RelatedPackages, nil
	case models.KindGroupTrip:
		return constants.RelatedGroupTrips, nil
	}
	return "", fmt.Errorf("resource: %q cannot be linked", kind)
}

// Relationships reads the owner's linked package and group trip ids.
func (r *Linked[T]) Relationships(ctx context.Context, id uint) (models.Relationships, error) {
	if id == 0 {
		return models.Relationships{}, ErrDisabled
	}
	return cached(ctx, r.cache, r.relKey(id), func(ctx context.Context) (models.Relationships, error) {
		var out models.Relationships
		err := r.client.Get(ctx, r.itemPath(id)+"/relationships", &out)
		return out, err
	})
}

func (r *Linked[T]) link(ctx context.Context, method string, owner uint, kind models.Kind, related uint) error {
	if owner == 0 || related == 0 {
		return ErrDisabled
	}
	segment, err := relationshipSegment(kind)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/%s/%d", r.itemPath(owner), segment, related)
	if err := r.client.Do(ctx, method, endpoint, nil, nil); err != nil {
		return err
	}
	r.cache.InvalidateKey(r.relKey(owner))
	return nil
}

// AssignRelationship links related (a package or group trip) to owner.
// Assigning an existing link is a no-op on the server.
func (r *Linked[T]) AssignRelationship(ctx context.Context, owner uint, kind models.Kind, related uint) error {
	return r.link(ctx, http.MethodPost, owner, kind, related)
}

// RemoveRelationship unlinks related from owner.
func (r *Linked[T]) RemoveRelationship(ctx context.Context, owner uint, kind models.Kind, related uint) error {
	return r.link(ctx, http.MethodDelete, owner, kind, related)
}
