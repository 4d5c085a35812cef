package services

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelcms/dto"
	"travelcms/errors"
	"travelcms/models"
	"travelcms/services/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "services_test.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newHotelService(db *gorm.DB) *CatalogService[models.Hotel, *models.Hotel] {
	return NewCatalogService[models.Hotel, *models.Hotel](db, NewListCache(nil, logger.Nop{}), logger.Nop{},
		CatalogConfig[models.Hotel]{Kind: models.KindHotel, Filters: []string{"country_id", "is_active"}})
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Azure Bay", "azure-bay"},
		{"  Hôtel Été & Spa!! ", "hotel-ete-spa"},
		{"Đà Nẵng Beach", "da-nang-beach"},
		{"***", "item"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreateAssignsUniqueSlugs(t *testing.T) {
	ctx := context.Background()
	svc := newHotelService(openTestDB(t))

	var slugs []string
	for i := 0; i < 3; i++ {
		h := models.Hotel{Name: "Azure Bay", CountryID: 4}
		if err := svc.Create(ctx, &h); err != nil {
			t.Fatalf("create #%d: %v", i+1, err)
		}
		slugs = append(slugs, h.Slug)
	}
	want := []string{"azure-bay", "azure-bay-2", "azure-bay-3"}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("slugs = %v, want %v", slugs, want)
		}
	}

	got, err := svc.GetBySlug(ctx, "azure-bay-2")
	if err != nil || got.Slug != "azure-bay-2" {
		t.Fatalf("get by slug: %+v %v", got, err)
	}
	if _, err := svc.Get(ctx, 999); !errors.HasCode(err, errors.ErrCodeDBNotFound) {
		t.Fatalf("expected DB_NOT_FOUND, got %v", err)
	}
}

func TestUpdateKeepsSlug(t *testing.T) {
	ctx := context.Background()
	svc := newHotelService(openTestDB(t))

	h := models.Hotel{Name: "Azure Bay", CountryID: 4}
	if err := svc.Create(ctx, &h); err != nil {
		t.Fatalf("create: %v", err)
	}
	name := "Blue Lagoon"
	updated, err := svc.Update(ctx, h.ID, dto.UpdateHotelRequest{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name || updated.Slug != "azure-bay" || updated.CountryID != 4 {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestListPagingAndFilters(t *testing.T) {
	ctx := context.Background()
	svc := newHotelService(openTestDB(t))
	for i, name := range []string{"Azure Bay", "Harbour View", "Mountain Lodge"} {
		h := models.Hotel{Name: name, CountryID: uint(4 + i%2)}
		if err := svc.Create(ctx, &h); err != nil {
			t.Fatalf("create: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	q, err := svc.ParseListQuery(func(k string) string {
		return map[string]string{"country_id": "4", "limit": "1"}[k]
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	items, total, err := svc.List(ctx, q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 1 || items[0].Name != "Mountain Lodge" {
		t.Fatalf("unexpected page %+v total=%d", items, total)
	}

	if _, err := svc.ParseListQuery(func(k string) string {
		if k == "is_active" {
			return "maybe"
		}
		return ""
	}); !errors.HasCode(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("expected INVALID_FORMAT, got %v", err)
	}
	if _, err := svc.ParseListQuery(func(k string) string {
		if k == "limit" {
			return "-1"
		}
		return ""
	}); !stderrors.Is(err, errors.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestFuzzyFilterOrdersByMatch(t *testing.T) {
	type item struct{ name string }
	items := []item{{"Mountain Lodge"}, {"Harbour View"}, {"Harbour"}, {"Azure Bay"}}
	got := FuzzyFilter(items, func(i *item) string { return i.name }, "harbour")
	if len(got) != 2 {
		t.Fatalf("expected two matches, got %+v", got)
	}
	for _, it := range got {
		if it.name != "Harbour" && it.name != "Harbour View" {
			t.Fatalf("unexpected match %+v", it)
		}
	}

	typo := FuzzyFilter(items, func(i *item) string { return i.name }, "moutain")
	if len(typo) != 1 || typo[0].name != "Mountain Lodge" {
		t.Fatalf("expected typo match on Mountain Lodge, got %+v", typo)
	}

	if none := FuzzyFilter(items, func(i *item) string { return i.name }, "zzzz"); len(none) != 0 {
		t.Fatalf("expected no matches, got %+v", none)
	}
}

func TestRelationshipsHaveSetSemantics(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	rel := NewRelationshipService(db, logger.Nop{})

	hotel := models.Hotel{Name: "Azure Bay", CountryID: 4}
	hotel.Slug = "azure-bay"
	pkg := models.Package{Name: "Island Hopper", CountryID: 4}
	pkg.Slug = "island-hopper"
	trip := models.GroupTrip{Name: "Spring Escape", StartDate: "2025-05-01", EndDate: "2025-05-10"}
	trip.Slug = "spring-escape"
	for _, m := range []any{&hotel, &pkg, &trip} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := rel.Assign(ctx, models.KindHotel, hotel.ID, models.KindPackage, pkg.ID); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}
	got, err := rel.Assign(ctx, models.KindHotel, hotel.ID, models.KindGroupTrip, trip.ID)
	if err != nil {
		t.Fatalf("assign trip: %v", err)
	}
	if len(got.PackageIDs) != 1 || len(got.GroupTripIDs) != 1 {
		t.Fatalf("unexpected relationships %+v", got)
	}

	if _, err := rel.Assign(ctx, models.KindHotel, 999, models.KindPackage, pkg.ID); !errors.HasCode(err, errors.ErrCodeDBNotFound) {
		t.Fatalf("expected DB_NOT_FOUND for a missing owner, got %v", err)
	}

	got, err = rel.Remove(ctx, models.KindHotel, hotel.ID, models.KindPackage, pkg.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.PackageIDs) != 0 || len(got.GroupTripIDs) != 1 {
		t.Fatalf("unexpected relationships after remove %+v", got)
	}

	other := models.Package{Name: "Reef Explorer", CountryID: 4}
	other.Slug = "reef-explorer"
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, relatedID := range []uint{pkg.ID, other.ID, 999} {
		got, err = rel.Remove(ctx, models.KindHotel, hotel.ID, models.KindPackage, relatedID)
		if err != nil {
			t.Fatalf("remove non-member %d: %v", relatedID, err)
		}
		if len(got.PackageIDs) != 0 || len(got.GroupTripIDs) != 1 {
			t.Fatalf("remove of non-member %d changed the set: %+v", relatedID, got)
		}
	}
	if _, err := rel.Remove(ctx, models.KindHotel, 999, models.KindPackage, pkg.ID); !errors.HasCode(err, errors.ErrCodeDBNotFound) {
		t.Fatalf("expected DB_NOT_FOUND for a missing owner, got %v", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		_, err := rel.PurgeEntity(ctx, tx, models.KindGroupTrip, trip.ID)
		return err
	}); err != nil {
		t.Fatalf("purge: %v", err)
	}
	got, err = rel.Get(ctx, models.KindHotel, hotel.ID)
	if err != nil || len(got.GroupTripIDs) != 0 {
		t.Fatalf("purged trip still linked: %+v %v", got, err)
	}
}

func TestAssignTreatsDuplicateInsertAsMember(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	rel := NewRelationshipService(db, logger.Nop{})

	hotel := models.Hotel{Name: "Azure Bay", CountryID: 4}
	hotel.Slug = "azure-bay"
	pkg := models.Package{Name: "Island Hopper", CountryID: 4}
	pkg.Slug = "island-hopper"
	for _, m := range []any{&hotel, &pkg} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := rel.Assign(ctx, models.KindHotel, hotel.ID, models.KindPackage, pkg.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// Hide existing links from reads so the next assign loses the race
	// against the row written above and hits the unique index.
	const hide = "test:hide_relationships"
	err := db.Callback().Query().Before("gorm:query").Register(hide, func(tx *gorm.DB) {
		if tx.Statement.Table == "relationships" {
			tx.Statement.AddClause(clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "1 = 0"}}})
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	_, err = rel.Assign(ctx, models.KindHotel, hotel.ID, models.KindPackage, pkg.ID)
	if rmErr := db.Callback().Query().Remove(hide); rmErr != nil {
		t.Fatalf("remove callback: %v", rmErr)
	}
	if err != nil {
		t.Fatalf("duplicate assign should succeed, got %v", err)
	}

	got, err := rel.Get(ctx, models.KindHotel, hotel.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.PackageIDs) != 1 || got.PackageIDs[0] != pkg.ID {
		t.Fatalf("unexpected relationships %+v", got)
	}
}

func TestDeleteRemovesStoredFilesOnlyAfterCommit(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	dir := t.TempDir()
	storage := NewLocalStorage(dir)
	media := NewMediaService(db, storage, NewListCache(nil, logger.Nop{}), logger.Nop{})

	svc := newHotelService(db)
	hotel := models.Hotel{Name: "Azure Bay", CountryID: 4}
	if err := svc.Create(ctx, &hotel); err != nil {
		t.Fatalf("create: %v", err)
	}
	m, err := media.Upload(ctx, dto.MediaUploadForm{EntityType: string(models.KindHotel), EntityID: hotel.ID}, "pool.jpg", strings.NewReader("pool"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	stored := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(m.FilePath, "/uploads/")))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	boom := stderrors.New("boom")
	svc.OnDelete(media.PurgeEntity)
	svc.OnDelete(func(context.Context, *gorm.DB, models.Kind, uint) (func(), error) {
		return nil, boom
	})
	if err := svc.Delete(ctx, hotel.ID); err == nil {
		t.Fatalf("expected the delete to fail")
	}
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("file removed although the delete rolled back: %v", err)
	}
	if _, err := media.Get(ctx, m.ID); err != nil {
		t.Fatalf("media row should survive the rollback: %v", err)
	}

	svc = newHotelService(db)
	svc.OnDelete(media.PurgeEntity)
	if err := svc.Delete(ctx, hotel.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Fatalf("expected stored file removed, got %v", err)
	}
	_, err = media.Get(ctx, m.ID)
	if !errors.HasCode(err, errors.ErrCodeDBNotFound) || !stderrors.Is(err, errors.ErrMediaNotFound) {
		t.Fatalf("expected media not found, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	raw, err := tokens.GenerateToken(UserInfo{UserId: 7, Role: "editor"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	info, err := tokens.ParseToken(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.UserId != 7 || info.Role != "editor" {
		t.Fatalf("unexpected claims %+v", info)
	}
	if _, err := NewTokenService("other", time.Hour).ParseToken(raw); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}
