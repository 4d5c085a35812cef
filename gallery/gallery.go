// Package gallery coordinates an entity's images with its cover reference:
// the cover always points at one of the entity's own images or is empty.
package gallery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"travelcms/client"
	"travelcms/models"
	"travelcms/services/logger"
)

// Owner identifies the entity a gallery belongs to.
type Owner struct {
	Kind models.Kind
	ID   uint
}

func (o Owner) path() string {
	return fmt.Sprintf("/%s/%d", o.Kind.Path(), o.ID)
}

// File is one upload of a batch.
type File struct {
	Name    string
	Content io.Reader
	AltText string
}

// ItemResult reports one file of a batch.
type ItemResult struct {
	Name  string
	Media *models.Media
	Err   error
}

type UploadResult struct {
	Items     []ItemResult
	Succeeded int
	// CoverErr is set when an automatic cover selection could not be saved.
	CoverErr error
}

// CoverSyncError means the local cover selection stands but the server write
// failed.
type CoverSyncError struct {
	CoverID *uint
	Err     error
}

func (e *CoverSyncError) Error() string {
	return "cover image not saved: " + e.Err.Error()
}

func (e *CoverSyncError) Unwrap() error {
	return e.Err
}

// Invalidator marks cached copies of an entity stale after the gallery
// changed it on the server.
type Invalidator interface {
	InvalidateEntity(kind models.Kind, id uint)
}

type Gallery struct {
	client      *client.Client
	owner       Owner
	logger      logger.Logger
	invalidator Invalidator

	mu      sync.Mutex
	images  []models.Media
	coverID *uint
}

func New(c *client.Client, owner Owner, log logger.Logger) *Gallery {
	if log == nil {
		log = logger.Nop{}
	}
	return &Gallery{client: c, owner: owner, logger: log}
}

// WithInvalidator reports owner changes to inv.
func (g *Gallery) WithInvalidator(inv Invalidator) *Gallery {
	g.invalidator = inv
	return g
}

func (g *Gallery) Owner() Owner { return g.owner }

func (g *Gallery) ownerChanged() {
	if g.invalidator != nil {
		g.invalidator.InvalidateEntity(g.owner.Kind, g.owner.ID)
	}
}

// Images returns a copy of the gallery in upload order.
func (g *Gallery) Images() []models.Media {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Media, len(g.images))
	copy(out, g.images)
	return out
}

// Cover returns the selected cover image id, or nil.
func (g *Gallery) Cover() *uint {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copyID(g.coverID)
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Load fetches the gallery and the owner's current cover.
func (g *Gallery) Load(ctx context.Context) error {
	q := url.Values{}
	q.Set("entity_type", string(g.owner.Kind))
	q.Set("entity_id", strconv.FormatUint(uint64(g.owner.ID), 10))
	images := []models.Media{}
	if err := g.client.Get(ctx, "/media/?"+q.Encode(), &images); err != nil {
		return err
	}
	var owner struct {
		CoverImageID *uint `json:"cover_image_id"`
	}
	if err := g.client.Get(ctx, g.owner.path(), &owner); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.images = images
	g.coverID = owner.CoverImageID
	return nil
}

func (g *Gallery) uploadOne(ctx context.Context, f File) (models.Media, error) {
	body := client.NewMultipart().
		AddField("entity_type", string(g.owner.Kind)).
		AddField("entity_id", strconv.FormatUint(uint64(g.owner.ID), 10))
	if f.AltText != "" {
		body.AddField("alt_text", f.AltText)
	}
	body.AddFile("file", f.Name, f.Content)
	var m models.Media
	err := g.client.Do(ctx, http.MethodPost, "/media/upload", body, &m)
	return m, err
}

// Upload sends files one at a time. A failed file is reported and the batch
// continues. When the gallery had neither images nor a cover, the first
// uploaded image becomes the cover.
func (g *Gallery) Upload(ctx context.Context, files []File) UploadResult {
	g.mu.Lock()
	autoCover := len(g.images) == 0 && g.coverID == nil
	g.mu.Unlock()

	result := UploadResult{Items: make([]ItemResult, 0, len(files))}
	for _, f := range files {
		m, err := g.uploadOne(ctx, f)
		if err != nil {
			g.logger.Error("upload %s to %s %d: %v", f.Name, g.owner.Kind, g.owner.ID, err)
			result.Items = append(result.Items, ItemResult{Name: f.Name, Err: err})
			continue
		}
		g.mu.Lock()
		g.images = append(g.images, m)
		g.mu.Unlock()
		media := m
		result.Items = append(result.Items, ItemResult{Name: f.Name, Media: &media})
		result.Succeeded++

		if autoCover {
			autoCover = false
			if err := g.SetCover(ctx, m.ID); err != nil {
				result.CoverErr = err
			}
		}
	}
	g.logger.Info("uploaded %d of %d files to %s %d", result.Succeeded, len(files), g.owner.Kind, g.owner.ID)
	return result
}

func (g *Gallery) persistCover(ctx context.Context, id *uint) error {
	body := map[string]*uint{"image_id": id}
	if err := g.client.Do(ctx, http.MethodPost, g.owner.path()+"/cover-image", body, nil); err != nil {
		g.logger.Error("save cover of %s %d: %v", g.owner.Kind, g.owner.ID, err)
		return &CoverSyncError{CoverID: copyID(id), Err: err}
	}
	g.ownerChanged()
	return nil
}

// SetCover selects imageID locally, then saves it. A failed save is returned
// as *CoverSyncError and the local selection stays.
func (g *Gallery) SetCover(ctx context.Context, imageID uint) error {
	g.mu.Lock()
	found := false
	for _, m := range g.images {
		if m.ID == imageID {
			found = true
			break
		}
	}
	if !found {
		g.mu.Unlock()
		return fmt.Errorf("image %d is not in the gallery of %s %d", imageID, g.owner.Kind, g.owner.ID)
	}
	id := imageID
	g.coverID = &id
	g.mu.Unlock()

	return g.persistCover(ctx, &id)
}

// Remove deletes an image. Removing the cover moves it to the first remaining
// image, or clears it when none remain; that change is saved best effort and
// a failed save comes back as *CoverSyncError.
func (g *Gallery) Remove(ctx context.Context, imageID uint) error {
	if err := g.client.Delete(ctx, fmt.Sprintf("/media/%d", imageID), nil); err != nil {
		return err
	}
	g.ownerChanged()

	g.mu.Lock()
	remaining := g.images[:0:0]
	for _, m := range g.images {
		if m.ID != imageID {
			remaining = append(remaining, m)
		}
	}
	g.images = remaining
	wasCover := g.coverID != nil && *g.coverID == imageID
	var next *uint
	if wasCover {
		if len(remaining) > 0 {
			id := remaining[0].ID
			next = &id
		}
		g.coverID = next
	}
	g.mu.Unlock()

	if !wasCover {
		return nil
	}
	return g.persistCover(ctx, next)
}

// UpdateDetails changes an image's alt text and caption; nil leaves a field.
func (g *Gallery) UpdateDetails(ctx context.Context, imageID uint, altText, caption *string) (models.Media, error) {
	body := map[string]*string{}
	if altText != nil {
		body["alt_text"] = altText
	}
	if caption != nil {
		body["caption"] = caption
	}
	var m models.Media
	if err := g.client.Put(ctx, fmt.Sprintf("/media/%d", imageID), body, &m); err != nil {
		return m, err
	}
	g.mu.Lock()
	for i := range g.images {
		if g.images[i].ID == imageID {
			g.images[i] = m
		}
	}
	g.mu.Unlock()
	return m, nil
}
