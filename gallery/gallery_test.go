package gallery

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"travelcms/client"
	"travelcms/models"
	"travelcms/services/logger"
)

// fakeCatalog serves the media and cover endpoints of a single hotel.
type fakeCatalog struct {
	mu        sync.Mutex
	nextID    uint
	images    []models.Media
	cover     *uint
	coverPost int
	failCover bool
	failFile  string
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	switch {
	case r.Method == http.MethodGet && path == "/media/":
		_ = json.NewEncoder(w).Encode(f.images)
	case r.Method == http.MethodGet && path == "/hotels/1":
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "cover_image_id": f.cover})
	case r.Method == http.MethodPost && path == "/media/upload":
		file, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		_, _ = io.Copy(io.Discard, file)
		_ = file.Close()
		if hdr.Filename == f.failFile {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail": "unsupported image"}`))
			return
		}
		f.nextID++
		m := models.Media{ID: f.nextID, EntityType: models.KindHotel, EntityID: 1, FilePath: "/uploads/" + hdr.Filename}
		f.images = append(f.images, m)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(m)
	case r.Method == http.MethodPost && path == "/hotels/1/cover-image":
		f.coverPost++
		if f.failCover {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var body struct {
			ImageID *uint `json:"image_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.cover = body.ImageID
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "cover_image_id": f.cover})
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/media/"):
		id, _ := strconv.ParseUint(strings.TrimPrefix(path, "/media/"), 10, 64)
		kept := f.images[:0]
		for _, m := range f.images {
			if m.ID != uint(id) {
				kept = append(kept, m)
			}
		}
		f.images = kept
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeCatalog) seed(n int) {
	for i := 0; i < n; i++ {
		f.nextID++
		f.images = append(f.images, models.Media{ID: f.nextID, EntityType: models.KindHotel, EntityID: 1, FilePath: fmt.Sprintf("/uploads/%d.jpg", f.nextID)})
	}
}

func (f *fakeCatalog) savedCover() *uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cover
}

func (f *fakeCatalog) posts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coverPost
}

func newGallery(t *testing.T, fake *fakeCatalog) *Gallery {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	c := client.New(client.Options{BaseURL: srv.URL + "/api/v1"})
	g := New(c, Owner{Kind: models.KindHotel, ID: 1}, logger.Nop{})
	if err := g.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return g
}

func ref(id uint) *uint { return &id }

func TestRemoveCoverMovesToFirstRemaining(t *testing.T) {
	fake := &fakeCatalog{}
	fake.seed(2)
	fake.cover = ref(1)
	g := newGallery(t, fake)

	if err := g.Remove(context.Background(), 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if c := g.Cover(); c == nil || *c != 2 {
		t.Fatalf("expected cover 2, got %v", c)
	}
	if c := fake.savedCover(); c == nil || *c != 2 {
		t.Fatalf("expected saved cover 2, got %v", c)
	}
	if len(g.Images()) != 1 {
		t.Fatalf("expected one image left, got %d", len(g.Images()))
	}
}

func TestRemoveLastImageClearsCover(t *testing.T) {
	fake := &fakeCatalog{}
	fake.seed(1)
	fake.cover = ref(1)
	g := newGallery(t, fake)

	if err := g.Remove(context.Background(), 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if g.Cover() != nil || fake.savedCover() != nil {
		t.Fatalf("cover should be cleared, got local %v saved %v", g.Cover(), fake.savedCover())
	}
}

func TestRemoveNonCoverKeepsCover(t *testing.T) {
	fake := &fakeCatalog{}
	fake.seed(3)
	fake.cover = ref(2)
	g := newGallery(t, fake)

	if err := g.Remove(context.Background(), 3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if c := g.Cover(); c == nil || *c != 2 {
		t.Fatalf("expected cover 2, got %v", c)
	}
	if fake.posts() != 0 {
		t.Fatalf("cover must not be rewritten, got %d writes", fake.posts())
	}
}

func TestUploadBatchContinuesAfterFailure(t *testing.T) {
	fake := &fakeCatalog{failFile: "b.jpg"}
	g := newGallery(t, fake)

	res := g.Upload(context.Background(), []File{
		{Name: "a.jpg", Content: strings.NewReader("a")},
		{Name: "b.jpg", Content: strings.NewReader("b")},
		{Name: "c.jpg", Content: strings.NewReader("c")},
	})
	if res.Succeeded != 2 || len(res.Items) != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Items[1].Err == nil || res.Items[1].Err.Error() != "unsupported image" {
		t.Fatalf("second file should fail, got %v", res.Items[1].Err)
	}
	if res.Items[0].Err != nil || res.Items[2].Err != nil {
		t.Fatalf("first and third files should succeed: %+v", res.Items)
	}
	if c := g.Cover(); c == nil || *c != res.Items[0].Media.ID {
		t.Fatalf("first upload should become the cover, got %v", c)
	}
	if fake.posts() != 1 {
		t.Fatalf("expected one cover write, got %d", fake.posts())
	}
	if len(g.Images()) != 2 {
		t.Fatalf("expected two images, got %d", len(g.Images()))
	}
}

func TestUploadKeepsExistingCover(t *testing.T) {
	fake := &fakeCatalog{}
	fake.seed(1)
	fake.cover = ref(1)
	g := newGallery(t, fake)

	res := g.Upload(context.Background(), []File{{Name: "d.jpg", Content: strings.NewReader("d")}})
	if res.Succeeded != 1 {
		t.Fatalf("upload failed: %+v", res)
	}
	if c := g.Cover(); c == nil || *c != 1 {
		t.Fatalf("cover changed to %v", c)
	}
	if fake.posts() != 0 {
		t.Fatalf("no cover write expected")
	}
}

func TestSetCoverFailureKeepsLocalChoice(t *testing.T) {
	fake := &fakeCatalog{failCover: true}
	fake.seed(2)
	fake.cover = ref(1)
	g := newGallery(t, fake)

	err := g.SetCover(context.Background(), 2)
	var syncErr *CoverSyncError
	if !stderrors.As(err, &syncErr) {
		t.Fatalf("expected *CoverSyncError, got %T %v", err, err)
	}
	if syncErr.CoverID == nil || *syncErr.CoverID != 2 {
		t.Fatalf("unexpected error cover %v", syncErr.CoverID)
	}
	if client.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("expected wrapped 500, got %v", err)
	}
	if c := g.Cover(); c == nil || *c != 2 {
		t.Fatalf("local cover should stay 2, got %v", c)
	}
	if c := fake.savedCover(); c == nil || *c != 1 {
		t.Fatalf("server cover should still be 1, got %v", c)
	}
}

func TestSetCoverRejectsForeignImage(t *testing.T) {
	fake := &fakeCatalog{}
	fake.seed(1)
	g := newGallery(t, fake)

	if err := g.SetCover(context.Background(), 42); err == nil {
		t.Fatalf("expected an error for an image outside the gallery")
	}
	if fake.posts() != 0 {
		t.Fatalf("nothing should be sent")
	}
}

type recordingInvalidator struct {
	owners []Owner
}

func (r *recordingInvalidator) InvalidateEntity(kind models.Kind, id uint) {
	r.owners = append(r.owners, Owner{Kind: kind, ID: id})
}

func TestOwnerChangesAreReported(t *testing.T) {
	ctx := context.Background()
	fake := &fakeCatalog{}
	g := newGallery(t, fake)
	inv := &recordingInvalidator{}
	g.WithInvalidator(inv)

	res := g.Upload(ctx, []File{{Name: "a.jpg", Content: strings.NewReader("a")}})
	if res.Succeeded != 1 || res.CoverErr != nil {
		t.Fatalf("unexpected upload result %+v", res)
	}
	if len(inv.owners) != 1 || inv.owners[0] != (Owner{Kind: models.KindHotel, ID: 1}) {
		t.Fatalf("expected one invalidation of hotel 1 after auto cover, got %+v", inv.owners)
	}

	if err := g.Remove(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// media delete and the cleared cover
	if len(inv.owners) != 3 {
		t.Fatalf("expected 3 invalidations, got %+v", inv.owners)
	}
}

func TestFailedCoverSaveIsNotReported(t *testing.T) {
	fake := &fakeCatalog{failCover: true}
	fake.seed(1)
	g := newGallery(t, fake)
	inv := &recordingInvalidator{}
	g.WithInvalidator(inv)

	if err := g.SetCover(context.Background(), 1); err == nil {
		t.Fatalf("expected a cover sync error")
	}
	if len(inv.owners) != 0 {
		t.Fatalf("expected no invalidation, got %+v", inv.owners)
	}
}
