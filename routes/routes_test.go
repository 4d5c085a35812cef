package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"travelcms/client"
	"travelcms/config"
	"travelcms/dto"
	"travelcms/gallery"
	"travelcms/models"
	"travelcms/resource"
	"travelcms/services"
	"travelcms/services/logger"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct-horse"
)

type testEnv struct {
	db       *gorm.DB
	server   *httptest.Server
	services *Services
	client   *client.Client
	hooks    *resource.Hooks
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	settings := config.Settings{
		Env:        "test",
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "travelcms_test.db"),
	}
	db, err := config.OpenDB(settings)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mediaDir := t.TempDir()
	router := gin.New()
	svc := SetupRoutes(router, Dependencies{
		DB:       db,
		Storage:  services.NewLocalStorage(mediaDir),
		Tokens:   services.NewTokenService("test-secret", time.Hour),
		Logger:   logger.Nop{},
		MediaDir: mediaDir,
	})
	if err := svc.Auth.BootstrapAdmin(ctx, adminEmail, adminPassword); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c := client.New(client.Options{BaseURL: srv.URL + "/api/v1"})
	if _, err := c.Login(ctx, adminEmail, adminPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
	return &testEnv{db: db, server: srv, services: svc, client: c, hooks: resource.NewHooks(c)}
}

func TestCreatedHotelIsReadableEverywhere(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	hotels := env.hooks.Hotels

	if _, err := hotels.List(ctx, resource.Filter{}); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	created, err := hotels.Create(ctx, dto.CreateHotelRequest{Name: "Azure Bay", CountryID: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Slug != "azure-bay" || !created.IsActive || created.CountryID != 4 {
		t.Fatalf("unexpected created hotel %+v", created)
	}

	got, err := hotels.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.Name != "Azure Bay" || got.Slug != created.Slug {
		t.Fatalf("detail differs from created: %+v", got)
	}

	bySlug, err := hotels.GetBySlug(ctx, "azure-bay")
	if err != nil || bySlug.ID != created.ID {
		t.Fatalf("get by slug: %+v %v", bySlug, err)
	}

	list, err := hotels.List(ctx, resource.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, h := range list {
		if h.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("list after create does not include hotel %d", created.ID)
	}

	twin, err := hotels.Create(ctx, dto.CreateHotelRequest{Name: "Azure Bay", CountryID: 4})
	if err != nil {
		t.Fatalf("create twin: %v", err)
	}
	if twin.Slug != "azure-bay-2" {
		t.Fatalf("expected azure-bay-2, got %q", twin.Slug)
	}

	name := "Azure Bay Resort"
	updated, err := hotels.Update(ctx, created.ID, dto.UpdateHotelRequest{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name || updated.Slug != "azure-bay" {
		t.Fatalf("unexpected update %+v", updated)
	}
	got, err = hotels.Get(ctx, created.ID)
	if err != nil || got.Name != name {
		t.Fatalf("get after update: %+v %v", got, err)
	}
}

func TestListFiltersAndSearch(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	hotels := env.hooks.Hotels

	for _, in := range []dto.CreateHotelRequest{
		{Name: "Azure Bay", CountryID: 4},
		{Name: "Harbour View", CountryID: 4},
		{Name: "Mountain Lodge", CountryID: 7},
	} {
		if _, err := hotels.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	inCountry, err := hotels.List(ctx, resource.Filter{CountryID: 4})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(inCountry) != 2 {
		t.Fatalf("expected 2 hotels in country 4, got %d", len(inCountry))
	}

	matches, err := hotels.List(ctx, resource.Filter{Query: "harbor"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) == 0 || matches[0].Name != "Harbour View" {
		t.Fatalf("expected Harbour View first, got %+v", matches)
	}

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/hotels/?limit=1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("raw list: %v", err)
	}
	_ = resp.Body.Close()
	if resp.Header.Get("X-Total-Count") != "3" {
		t.Fatalf("X-Total-Count = %q", resp.Header.Get("X-Total-Count"))
	}
}

func TestAssignRelationshipIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	hotel, err := env.hooks.Hotels.Create(ctx, dto.CreateHotelRequest{Name: "Azure Bay", CountryID: 4})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	pkg, err := env.hooks.Packages.Create(ctx, dto.CreatePackageRequest{Name: "Island Hopper", CountryID: 4})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := env.hooks.Hotels.AssignRelationship(ctx, hotel.ID, models.KindPackage, pkg.ID); err != nil {
			t.Fatalf("assign #%d: %v", i+1, err)
		}
	}
	rel, err := env.hooks.Hotels.Relationships(ctx, hotel.ID)
	if err != nil {
		t.Fatalf("relationships: %v", err)
	}
	if len(rel.PackageIDs) != 1 || rel.PackageIDs[0] != pkg.ID || len(rel.GroupTripIDs) != 0 {
		t.Fatalf("unexpected relationships %+v", rel)
	}

	err = env.hooks.Hotels.AssignRelationship(ctx, hotel.ID, models.KindPackage, 999)
	if !client.IsNotFound(err) {
		t.Fatalf("expected 404 for a missing package, got %v", err)
	}

	if err := env.hooks.Hotels.RemoveRelationship(ctx, hotel.ID, models.KindPackage, pkg.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	rel, err = env.hooks.Hotels.Relationships(ctx, hotel.ID)
	if err != nil || len(rel.PackageIDs) != 0 {
		t.Fatalf("expected no packages, got %+v %v", rel, err)
	}

	other, err := env.hooks.Packages.Create(ctx, dto.CreatePackageRequest{Name: "Reef Explorer", CountryID: 4})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	// Same edge again, an existing unassigned package, and an id that never existed.
	for _, relatedID := range []uint{pkg.ID, other.ID, 999} {
		if err := env.hooks.Hotels.RemoveRelationship(ctx, hotel.ID, models.KindPackage, relatedID); err != nil {
			t.Fatalf("remove non-member %d: %v", relatedID, err)
		}
	}
	rel, err = env.hooks.Hotels.Relationships(ctx, hotel.ID)
	if err != nil || len(rel.PackageIDs) != 0 {
		t.Fatalf("expected no packages, got %+v %v", rel, err)
	}
}

func TestServerValidationAndAuth(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	err := env.client.Post(ctx, "/hotels/", map[string]any{"country_id": 4}, nil)
	reqErr, ok := err.(*client.RequestError)
	if !ok || reqErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if reqErr.Message != "body.name: field required" {
		t.Fatalf("message = %q", reqErr.Message)
	}

	err = env.client.Post(ctx, "/group-trips/", map[string]any{
		"name": "Spring Escape", "start_date": "2025-05-10", "end_date": "2025-05-01",
	}, nil)
	if client.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed dates, got %v", err)
	}

	anon := client.New(client.Options{BaseURL: env.server.URL + "/api/v1"})
	err = anon.Post(ctx, "/hotels/", dto.CreateHotelRequest{Name: "Azure Bay", CountryID: 4}, nil)
	if client.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %v", err)
	}
	if err := anon.Get(ctx, "/hotels/", nil); err != nil {
		t.Fatalf("reads are public: %v", err)
	}
	if _, err := anon.Login(ctx, adminEmail, "wrong"); client.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad password, got %v", err)
	}

	me, err := env.client.Me(ctx)
	if err != nil || me.Email != adminEmail || me.Role != "admin" {
		t.Fatalf("me: %+v %v", me, err)
	}
}

func TestGalleryAgainstServer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	hotel, err := env.hooks.Hotels.Create(ctx, dto.CreateHotelRequest{Name: "Azure Bay", CountryID: 4})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	g := gallery.New(env.client, gallery.Owner{Kind: models.KindHotel, ID: hotel.ID}, logger.Nop{})
	if err := g.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	res := g.Upload(ctx, []gallery.File{
		{Name: "pool.jpg", Content: strings.NewReader("pool")},
		{Name: "lobby.jpg", Content: strings.NewReader("lobby")},
	})
	if res.Succeeded != 2 || res.CoverErr != nil {
		t.Fatalf("upload: %+v", res)
	}
	first := res.Items[0].Media.ID
	second := res.Items[1].Media.ID

	var owner models.Hotel
	if err := env.client.Get(ctx, "/hotels/"+itoa(hotel.ID), &owner); err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	if owner.CoverImageID == nil || *owner.CoverImageID != first {
		t.Fatalf("expected cover %d, got %v", first, owner.CoverImageID)
	}

	if err := g.Remove(ctx, first); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := env.client.Get(ctx, "/hotels/"+itoa(hotel.ID), &owner); err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	if owner.CoverImageID == nil || *owner.CoverImageID != second {
		t.Fatalf("expected cover %d after removal, got %v", second, owner.CoverImageID)
	}

	other, err := env.hooks.Attractions.Create(ctx, dto.CreateAttractionRequest{Name: "Coral Reef", CountryID: 4})
	if err != nil {
		t.Fatalf("create attraction: %v", err)
	}
	_, err = env.hooks.Attractions.SetCover(ctx, other.ID, &second)
	if client.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected a validation error for a foreign image, got %v", err)
	}

	if err := env.hooks.Hotels.Delete(ctx, hotel.ID); err != nil {
		t.Fatalf("delete hotel: %v", err)
	}
	var left []models.Media
	if err := env.client.Get(ctx, "/media/?entity_type=hotel&entity_id="+itoa(hotel.ID), &left); err != nil {
		t.Fatalf("list media: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("media should be purged with the hotel, got %d", len(left))
	}
	if _, err := env.hooks.Hotels.Get(ctx, hotel.ID); !client.IsNotFound(err) {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
}

func TestCoverRepairClearsDanglingReferences(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	hotel, err := env.hooks.Hotels.Create(ctx, dto.CreateHotelRequest{Name: "Azure Bay", CountryID: 4})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	db := env.db
	if err := db.Model(&models.Hotel{}).Where("id = ?", hotel.ID).UpdateColumn("cover_image_id", 12345).Error; err != nil {
		t.Fatalf("corrupt cover: %v", err)
	}
	n, err := env.services.Covers.RepairCoverReferences(ctx)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one repaired row, got %d", n)
	}
	var h models.Hotel
	if err := db.First(&h, hotel.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if h.CoverImageID != nil {
		t.Fatalf("cover should be cleared, got %v", *h.CoverImageID)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestGalleryChangesRefreshCachedOwner(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	hotel, err := env.hooks.Hotels.Create(ctx, dto.CreateHotelRequest{Name: "Azure Bay", CountryID: 4})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	cached, err := env.hooks.Hotels.Get(ctx, hotel.ID)
	if err != nil || cached.CoverImageID != nil {
		t.Fatalf("get hotel: %+v %v", cached, err)
	}

	g := gallery.New(env.client, gallery.Owner{Kind: models.KindHotel, ID: hotel.ID}, logger.Nop{}).WithInvalidator(env.hooks)
	if err := g.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	res := g.Upload(ctx, []gallery.File{{Name: "pool.jpg", Content: strings.NewReader("pool")}})
	if res.Succeeded != 1 || res.CoverErr != nil {
		t.Fatalf("upload: %+v", res)
	}
	first := res.Items[0].Media.ID

	fresh, err := env.hooks.Hotels.Get(ctx, hotel.ID)
	if err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	if fresh.CoverImageID == nil || *fresh.CoverImageID != first {
		t.Fatalf("expected cached cover %d after upload, got %v", first, fresh.CoverImageID)
	}

	if err := g.Remove(ctx, first); err != nil {
		t.Fatalf("remove: %v", err)
	}
	fresh, err = env.hooks.Hotels.Get(ctx, hotel.ID)
	if err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	if fresh.CoverImageID != nil {
		t.Fatalf("expected cover cleared after removing the last image, got %v", *fresh.CoverImageID)
	}
}
