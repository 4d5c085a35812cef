// Package resource gives every entity kind one cached, typed handle over the
// catalog REST contract. Writes invalidate cached reads instead of patching
// them.
package resource

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"travelcms/client"
	"travelcms/models"
)

type Config struct {
	Kind models.Kind
	// Path is the collection path; it defaults to "/" + Kind.Path().
	Path string
	// Cache is shared between resources when set.
	Cache *QueryCache
}

// Resource is the handle of one entity kind; T is its response type. Values
// returned from the cache are shared and must be treated as read-only.
type Resource[T any] struct {
	client *client.Client
	kind   models.Kind
	path   string
	cache  *QueryCache
}

func New[T any](c *client.Client, cfg Config) *Resource[T] {
	path := cfg.Path
	if path == "" {
		path = "/" + cfg.Kind.Path()
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewQueryCache()
	}
	return &Resource[T]{
		client: c,
		kind:   cfg.Kind,
		path:   "/" + strings.Trim(client.NormalizeEndpoint(path), "/"),
		cache:  cache,
	}
}

func (r *Resource[T]) Kind() models.Kind { return r.kind }

func (r *Resource[T]) Cache() *QueryCache { return r.cache }

// Cache keys.
func listPrefix(kind models.Kind) string { return string(kind) + ":list:" }
func detailKey(kind models.Kind, id uint) string { return fmt.Sprintf("%s:detail:%d", kind, id) }
func slugPrefix(kind models.Kind) string { return string(kind) + ":slug:" }

func (r *Resource[T]) listPrefix() string { return listPrefix(r.kind) }
func (r *Resource[T]) detailKey(id uint) string { return detailKey(r.kind, id) }
func (r *Resource[T]) slugPrefix() string { return slugPrefix(r.kind) }
func (r *Resource[T]) itemPath(id uint) string { return fmt.Sprintf("%s/%d", r.path, id) }
func (r *Resource[T]) relKey(id uint) string { return fmt.Sprintf("%s:relationships:%d", r.kind, id) }

// ListKey is the cache key of a list query.
func (r *Resource[T]) ListKey(f Filter) string { return r.listPrefix() + f.Encode() }

// DetailKey is the cache key of Get(id).
func (r *Resource[T]) DetailKey(id uint) string { return r.detailKey(id) }

// read retries once when the failure is a transport error or a 5xx.
func read[V any](ctx context.Context, fetch func(context.Context) (V, error)) (V, error) {
	v, err := fetch(ctx)
	if err == nil {
		return v, nil
	}
	if reqErr, ok := err.(*client.RequestError); ok && reqErr.Retryable() && ctx.Err() == nil {
		return fetch(ctx)
	}
	return v, err
}

func cached[V any](ctx context.Context, cache *QueryCache, key string, fetch func(context.Context) (V, error)) (V, error) {
	data, err := cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return read(ctx, fetch)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return data.(V), nil
}

// List returns the matching entities; an empty slice when nothing matches.
func (r *Resource[T]) List(ctx context.Context, f Filter) ([]T, error) {
	endpoint := r.path + "/"
	if q := f.Encode(); q != "" {
		endpoint += "?" + q
	}
	return cached(ctx, r.cache, r.ListKey(f), func(ctx context.Context) ([]T, error) {
		items := []T{}
		if err := r.client.Get(ctx, endpoint, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	})
}

// Get fetches one entity; id 0 is disabled and sends nothing.
func (r *Resource[T]) Get(ctx context.Context, id uint) (T, error) {
	if id == 0 {
		var zero T
		return zero, ErrDisabled
	}
	return cached(ctx, r.cache, r.detailKey(id), func(ctx context.Context) (T, error) {
		var item T
		err := r.client.Get(ctx, r.itemPath(id), &item)
		return item, err
	})
}

// GetBySlug fetches one entity by slug; an empty slug is disabled.
func (r *Resource[T]) GetBySlug(ctx context.Context, slug string) (T, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		var zero T
		return zero, ErrDisabled
	}
	return cached(ctx, r.cache, r.slugPrefix()+slug, func(ctx context.Context) (T, error) {
		var item T
		err := r.client.Get(ctx, r.path+"/slug/"+slug, &item)
		return item, err
	})
}

// Create validates input, posts it and invalidates the kind's lists.
func (r *Resource[T]) Create(ctx context.Context, input any) (T, error) {
	var item T
	if err := validate(input); err != nil {
		return item, err
	}
	if err := r.client.Do(ctx, http.MethodPost, r.path+"/", input, &item); err != nil {
		return item, err
	}
	r.cache.Invalidate(r.listPrefix())
	return item, nil
}

// Update validates a partial input, puts it and invalidates the lists, the
// entity's detail entry and the kind's slug entries.
func (r *Resource[T]) Update(ctx context.Context, id uint, partial any) (T, error) {
	var item T
	if id == 0 {
		return item, ErrDisabled
	}
	if err := validate(partial); err != nil {
		return item, err
	}
	if err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), partial, &item); err != nil {
		return item, err
	}
	r.invalidateEntity(id)
	return item, nil
}

// Delete removes the entity, invalidates the lists and drops its detail entry.
func (r *Resource[T]) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrDisabled
	}
	if err := r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil); err != nil {
		return err
	}
	r.cache.Invalidate(r.listPrefix())
	r.cache.Invalidate(r.slugPrefix())
	r.cache.Drop(r.detailKey(id))
	return nil
}

// SetCover selects (or with nil clears) the entity's cover image.
func (r *Resource[T]) SetCover(ctx context.Context, id uint, imageID *uint) (T, error) {
	var item T
	if id == 0 {
		return item, ErrDisabled
	}
	body := map[string]*uint{"image_id": imageID}
	if err := r.client.Do(ctx, http.MethodPost, r.itemPath(id)+"/cover-image", body, &item); err != nil {
		return item, err
	}
	r.invalidateEntity(id)
	return item, nil
}

func (r *Resource[T]) invalidateEntity(id uint) {
	invalidateEntity(r.cache, r.kind, id)
}

// invalidateEntity marks everything cached about the entity stale.
func invalidateEntity(cache *QueryCache, kind models.Kind, id uint) {
	cache.Invalidate(listPrefix(kind))
	cache.InvalidateKey(detailKey(kind, id))
	cache.Invalidate(slugPrefix(kind))
}
