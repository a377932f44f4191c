package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/media"
)

type destinationFixture struct {
	svc        *DestinationService
	dests      *memoryDestinationRepo
	categories *memoryCategoryRepo
	storage    *fakeStorage
	admin      domain.Principal
}

func newDestinationFixture(dests ...domain.Destination) *destinationFixture {
	f := &destinationFixture{
		dests:      newMemoryDestinationRepo(dests...),
		categories: &memoryCategoryRepo{items: []domain.Category{{ID: uuid.New(), Slug: "bien-dao", Name: "Biển đảo"}}},
		storage:    &fakeStorage{},
		admin:      domain.Principal{UserID: uuid.New(), IsAdmin: true},
	}
	f.svc = NewDestinationService(f.dests, f.categories, memoryProvinceRepo{categories: f.categories}, f.storage, DestinationServiceConfig{
		Bucket:        "destinations",
		ImageMaxBytes: 1 << 20,
	})
	return f
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDestinationCreateDerivesSlugAndValidatesPrice(t *testing.T) {
	f := newDestinationFixture()
	ctx := context.Background()
	categoryID := f.categories.items[0].ID

	dest, err := f.svc.Create(ctx, f.admin, domain.DestinationInput{
		Name:       stringPtr("Vịnh Hạ Long"),
		CategoryID: &categoryID,
		PriceRange: &domain.PriceRange{Min: 500_000, Max: 2_000_000},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if dest.Slug != "vinh-ha-long" || !dest.IsActive || dest.Currency != domain.DefaultCurrency {
		t.Fatalf("unexpected destination %+v", dest)
	}

	_, err = f.svc.Create(ctx, f.admin, domain.DestinationInput{
		Name:       stringPtr("Broken"),
		PriceRange: &domain.PriceRange{Min: 10, Max: 5},
	})
	if !errors.Is(err, ErrDestinationValidation) {
		t.Fatalf("expected ErrDestinationValidation for min > max, got %v", err)
	}

	if _, err := f.svc.Create(ctx, f.admin, domain.DestinationInput{Name: stringPtr("Vinh Ha Long")}); !errors.Is(err, ErrDestinationSlugExists) {
		t.Fatalf("expected ErrDestinationSlugExists, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.admin, domain.DestinationInput{Name: stringPtr("Bad"), Slug: stringPtr("Not A Slug")}); !errors.Is(err, ErrDestinationValidation) {
		t.Fatalf("expected ErrDestinationValidation for bad slug, got %v", err)
	}
	unknown := uuid.New()
	if _, err := f.svc.Create(ctx, f.admin, domain.DestinationInput{Name: stringPtr("Orphan"), CategoryID: &unknown}); !errors.Is(err, ErrDestinationValidation) {
		t.Fatalf("expected ErrDestinationValidation for unknown category, got %v", err)
	}
	if _, err := f.svc.Create(ctx, domain.Principal{UserID: uuid.New()}, domain.DestinationInput{Name: stringPtr("Nope")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestDestinationUpdateVersionCheck(t *testing.T) {
	existing := catalogDestination("Cu Chi", nil, 4, 50_000, 100_000)
	f := newDestinationFixture(existing)
	ctx := context.Background()

	updated, err := f.svc.Update(ctx, f.admin, existing.ID, domain.DestinationInput{Name: stringPtr("Cu Chi Tunnels")}, 1)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Cu Chi Tunnels" || updated.Slug != existing.Slug || updated.Version != 2 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := f.svc.Update(ctx, f.admin, existing.ID, domain.DestinationInput{Name: stringPtr("Stale")}, 1); !errors.Is(err, ErrDestinationVersionConflict) {
		t.Fatalf("expected ErrDestinationVersionConflict, got %v", err)
	}

	deactivated, err := f.svc.Deactivate(ctx, f.admin, existing.ID)
	if err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}
	if deactivated.IsActive {
		t.Fatal("expected destination to be inactive")
	}
	if _, err := f.svc.GetByID(ctx, existing.ID); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("inactive destinations must be hidden, got %v", err)
	}
}

func TestDestinationUploadHeroImage(t *testing.T) {
	existing := catalogDestination("Hoi An", nil, 4.6, 100_000, 300_000)
	f := newDestinationFixture(existing)
	ctx := context.Background()
	data := samplePNG(t)

	dest, err := f.svc.UploadHeroImage(ctx, f.admin, existing.ID, media.Upload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		FileName:    "hoi-an.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("UploadHeroImage returned error: %v", err)
	}
	if len(f.storage.uploaded) != 1 {
		t.Fatalf("expected one upload, got %d", len(f.storage.uploaded))
	}
	up := f.storage.uploaded[0]
	if up.bucket != "destinations" || up.contentType != "image/png" || !strings.HasSuffix(up.objectName, ".png") {
		t.Fatalf("unexpected upload %+v", up)
	}
	if dest.HeroImage == nil || !strings.Contains(*dest.HeroImage, up.objectName) {
		t.Fatalf("expected hero image url to be stored, got %v", dest.HeroImage)
	}

	_, err = f.svc.UploadHeroImage(ctx, f.admin, existing.ID, media.Upload{
		Reader: strings.NewReader("not an image"), Size: 12, FileName: "x.png",
	})
	if !errors.Is(err, ErrHeroImageInvalid) {
		t.Fatalf("expected ErrHeroImageInvalid, got %v", err)
	}
}

func TestDestinationUploadRemovesObjectWhenSaveFails(t *testing.T) {
	existing := catalogDestination("Hoi An", nil, 4.6, 100_000, 300_000)
	f := newDestinationFixture(existing)
	f.dests.setHeroErr = errors.New("db down")
	data := samplePNG(t)

	_, err := f.svc.UploadHeroImage(context.Background(), f.admin, existing.ID, media.Upload{Reader: bytes.NewReader(data), Size: int64(len(data))})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(f.storage.removed) != 1 || f.storage.removed[0] != f.storage.uploaded[0].objectName {
		t.Fatalf("expected uploaded object to be removed, got %v", f.storage.removed)
	}
}

func TestDestinationListValidatesSort(t *testing.T) {
	f := newDestinationFixture(catalogDestination("A", nil, 1, 1, 2))
	if _, err := f.svc.List(context.Background(), domain.DestinationListFilter{Sort: "random"}); !errors.Is(err, ErrDestinationValidation) {
		t.Fatalf("expected ErrDestinationValidation, got %v", err)
	}
	result, err := f.svc.List(context.Background(), domain.DestinationListFilter{Sort: domain.DestinationSortRating})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 1 || result.Limit != defaultPageLimit {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCategoryServiceAdminOperations(t *testing.T) {
	categories := &memoryCategoryRepo{}
	svc := NewCategoryService(categories, memoryProvinceRepo{categories: categories})
	admin := domain.Principal{IsAdmin: true}
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, admin, CategoryInput{Name: stringPtr("Văn hóa lịch sử")})
	if err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if created.Slug != "van-hoa-lich-su" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}
	if _, err := svc.CreateCategory(ctx, admin, CategoryInput{Name: stringPtr("Van hoa lich su")}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.CreateCategory(ctx, domain.Principal{}, CategoryInput{Name: stringPtr("x")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.UpdateCategory(ctx, admin, created.ID, CategoryInput{Icon: stringPtr("landmark")})
	if err != nil || updated.Icon == nil || *updated.Icon != "landmark" {
		t.Fatalf("unexpected update %+v (%v)", updated, err)
	}

	province, err := svc.CreateProvince(ctx, admin, ProvinceInput{Name: "Quảng Ninh"})
	if err != nil || province.Slug != "quang-ninh" {
		t.Fatalf("unexpected province %+v (%v)", province, err)
	}

	if err := svc.DeleteCategory(ctx, admin, created.ID); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	if err := svc.DeleteCategory(ctx, admin, created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
