package service

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/planner"
)

func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
func intPtr(v int) *int           { return &v }

type memoryDestinationRepo struct {
	items map[uuid.UUID]*domain.Destination

	findActiveFilters []domain.CatalogFilter
	findActiveLimits  []int
	findActiveErr     error
	createErr         error
	setHeroErr        error
}

func newMemoryDestinationRepo(dests ...domain.Destination) *memoryDestinationRepo {
	repo := &memoryDestinationRepo{items: make(map[uuid.UUID]*domain.Destination)}
	for i := range dests {
		dest := dests[i]
		if dest.ID == uuid.Nil {
			dest.ID = uuid.New()
		}
		if dest.Version == 0 {
			dest.Version = 1
		}
		repo.items[dest.ID] = &dest
	}
	return repo
}

func (m *memoryDestinationRepo) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.items {
		if existing.Slug == dest.Slug {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *dest
	clone.ID = uuid.New()
	clone.Version = 1
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	m.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryDestinationRepo) Update(ctx context.Context, dest *domain.Destination, expectedVersion int) (*domain.Destination, error) {
	stored, ok := m.items[dest.ID]
	if !ok || stored.Version != expectedVersion {
		return nil, sql.ErrNoRows
	}
	clone := *dest
	clone.Version = stored.Version + 1
	clone.UpdatedAt = time.Now()
	m.items[dest.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryDestinationRepo) SetHeroImage(ctx context.Context, id uuid.UUID, url string) (*domain.Destination, error) {
	if m.setHeroErr != nil {
		return nil, m.setHeroErr
	}
	stored, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	stored.HeroImage = &url
	stored.Version++
	out := *stored
	return &out, nil
}

func (m *memoryDestinationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	stored, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (m *memoryDestinationRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	stored, ok := m.items[id]
	if !ok || !stored.IsActive {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (m *memoryDestinationRepo) FindActiveBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	for _, stored := range m.items {
		if stored.Slug == slug && stored.IsActive {
			out := *stored
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryDestinationRepo) List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, error) {
	out := m.byRating(func(d *domain.Destination) bool { return d.IsActive })
	if filter.Offset >= len(out) {
		return []domain.Destination{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memoryDestinationRepo) Count(ctx context.Context, filter domain.DestinationListFilter) (int64, error) {
	return int64(len(m.byRating(func(d *domain.Destination) bool { return d.IsActive }))), nil
}

func (m *memoryDestinationRepo) FindActive(ctx context.Context, filter domain.CatalogFilter, limit int) ([]domain.Destination, error) {
	m.findActiveFilters = append(m.findActiveFilters, filter)
	m.findActiveLimits = append(m.findActiveLimits, limit)
	if m.findActiveErr != nil {
		return nil, m.findActiveErr
	}
	out := m.byRating(func(d *domain.Destination) bool {
		if !d.IsActive {
			return false
		}
		if len(filter.CategoryIn) > 0 {
			if d.CategoryID == nil {
				return false
			}
			matched := false
			for _, id := range filter.CategoryIn {
				if id == *d.CategoryID {
					matched = true
				}
			}
			if !matched {
				return false
			}
		}
		if filter.PriceMinLte != nil && (d.PriceMin == nil || *d.PriceMin > *filter.PriceMinLte) {
			return false
		}
		return true
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryDestinationRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	out := make([]domain.Destination, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if stored, ok := m.items[id]; ok {
			out = append(out, *stored)
		}
	}
	return out, nil
}

func (m *memoryDestinationRepo) byRating(keep func(*domain.Destination) bool) []domain.Destination {
	out := make([]domain.Destination, 0, len(m.items))
	for _, stored := range m.items {
		if keep(stored) {
			out = append(out, *stored)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type memoryCategoryRepo struct {
	items     []domain.Category
	provinces []domain.Province
	listErr   error
	deleteErr error
}

func (m *memoryCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Category(nil), m.items...), nil
}

func (m *memoryCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	for _, c := range m.items {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryCategoryRepo) FindBySlugs(ctx context.Context, slugs []string) ([]domain.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Category, 0)
	for _, c := range m.items {
		for _, slug := range slugs {
			if c.Slug == slug {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (m *memoryCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	for _, c := range m.items {
		if c.Slug == category.Slug {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *category
	clone.ID = uuid.New()
	m.items = append(m.items, clone)
	return &clone, nil
}

func (m *memoryCategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	for i, c := range m.items {
		if c.ID == category.ID {
			m.items[i] = *category
			out := *category
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, c := range m.items {
		if c.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type memoryProvinceRepo struct {
	categories *memoryCategoryRepo
}

func (m memoryProvinceRepo) List(ctx context.Context) ([]domain.Province, error) {
	return append([]domain.Province(nil), m.categories.provinces...), nil
}

func (m memoryProvinceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Province, error) {
	for _, p := range m.categories.provinces {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m memoryProvinceRepo) Create(ctx context.Context, province *domain.Province) (*domain.Province, error) {
	for _, p := range m.categories.provinces {
		if p.Slug == province.Slug {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *province
	clone.ID = uuid.New()
	m.categories.provinces = append(m.categories.provinces, clone)
	return &clone, nil
}

type memoryItineraryRepo struct {
	items map[uuid.UUID]*domain.SavedItinerary
}

func newMemoryItineraryRepo() *memoryItineraryRepo {
	return &memoryItineraryRepo{items: make(map[uuid.UUID]*domain.SavedItinerary)}
}

func (m *memoryItineraryRepo) Create(ctx context.Context, itinerary *domain.SavedItinerary) (*domain.SavedItinerary, error) {
	clone := *itinerary
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	m.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryItineraryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.SavedItinerary, error) {
	stored, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (m *memoryItineraryRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedItinerary, error) {
	out := make([]domain.SavedItinerary, 0)
	for _, stored := range m.items {
		if stored.UserID == userID {
			out = append(out, *stored)
		}
	}
	return out, nil
}

func (m *memoryItineraryRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	items, _ := m.ListByUser(ctx, userID, 0, 0)
	return int64(len(items)), nil
}

func (m *memoryItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

// memoryTripRepo joins item rows against the destination repo the way the
// SQL item query does.
type memoryTripRepo struct {
	trips        map[uuid.UUID]*domain.Trip
	items        map[uuid.UUID][]domain.TripItem
	destinations *memoryDestinationRepo

	addItemErr error
	deleted    []uuid.UUID
}

func newMemoryTripRepo(destinations *memoryDestinationRepo) *memoryTripRepo {
	return &memoryTripRepo{
		trips:        make(map[uuid.UUID]*domain.Trip),
		items:        make(map[uuid.UUID][]domain.TripItem),
		destinations: destinations,
	}
}

func (m *memoryTripRepo) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	clone := *trip
	clone.ID = uuid.New()
	clone.Version = 1
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	m.trips[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryTripRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	stored, ok := m.trips[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (m *memoryTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Trip, error) {
	out := make([]domain.Trip, 0)
	for _, stored := range m.trips {
		if stored.UserID == userID {
			out = append(out, *stored)
		}
	}
	return out, nil
}

func (m *memoryTripRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	trips, _ := m.ListByUser(ctx, userID, 0, 0)
	return int64(len(trips)), nil
}

func (m *memoryTripRepo) Update(ctx context.Context, trip *domain.Trip, expectedVersion int) (*domain.Trip, error) {
	stored, ok := m.trips[trip.ID]
	if !ok || stored.Version != expectedVersion {
		return nil, sql.ErrNoRows
	}
	clone := *trip
	clone.Items = nil
	clone.Version = stored.Version + 1
	m.trips[trip.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.trips[id]; !ok {
		return sql.ErrNoRows
	}
	m.deleted = append(m.deleted, id)
	delete(m.trips, id)
	delete(m.items, id)
	return nil
}

func (m *memoryTripRepo) ListItems(ctx context.Context, tripID uuid.UUID) ([]domain.TripItem, error) {
	items := append([]domain.TripItem(nil), m.items[tripID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
	for i := range items {
		if dest, ok := m.destinations.items[items[i].DestinationID]; ok {
			items[i].DestinationName = dest.Name
			items[i].DestinationSlug = dest.Slug
			items[i].PriceMin = dest.PriceMin
			items[i].PriceMax = dest.PriceMax
			items[i].Currency = dest.Currency
			items[i].Duration = dest.Duration
		}
	}
	return items, nil
}

func (m *memoryTripRepo) AddItem(ctx context.Context, item *domain.TripItem) (*domain.TripItem, error) {
	if m.addItemErr != nil {
		return nil, m.addItemErr
	}
	for _, existing := range m.items[item.TripID] {
		if existing.DestinationID == item.DestinationID {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *item
	clone.ID = uuid.New()
	m.items[item.TripID] = append(m.items[item.TripID], clone)
	m.touch(item.TripID)
	return &clone, nil
}

func (m *memoryTripRepo) RemoveItem(ctx context.Context, tripID, destinationID uuid.UUID) error {
	items := m.items[tripID]
	for i, existing := range items {
		if existing.DestinationID == destinationID {
			m.items[tripID] = append(items[:i:i], items[i+1:]...)
			m.touch(tripID)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryTripRepo) UpdateItem(ctx context.Context, tripID, destinationID uuid.UUID, notes *string, plannedDate *time.Time) (*domain.TripItem, error) {
	items := m.items[tripID]
	for i := range items {
		if items[i].DestinationID == destinationID {
			items[i].Notes = notes
			items[i].PlannedDate = plannedDate
			m.touch(tripID)
			out := items[i]
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryTripRepo) ReorderItems(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	position := make(map[uuid.UUID]int, len(destinationIDs))
	for i, id := range destinationIDs {
		position[id] = i
	}
	items := m.items[tripID]
	for i := range items {
		idx, ok := position[items[i].DestinationID]
		if !ok {
			return sql.ErrNoRows
		}
		items[i].OrderIndex = idx
	}
	m.touch(tripID)
	return nil
}

func (m *memoryTripRepo) touch(tripID uuid.UUID) {
	if trip, ok := m.trips[tripID]; ok {
		trip.Version++
	}
}

// memoryReviewRepo recomputes aggregates onto the destination repo like the
// SQL aggregate statement does.
type memoryReviewRepo struct {
	reviews      map[uuid.UUID]*domain.Review
	destinations *memoryDestinationRepo
	recomputed   []uuid.UUID
}

func newMemoryReviewRepo(destinations *memoryDestinationRepo) *memoryReviewRepo {
	return &memoryReviewRepo{reviews: make(map[uuid.UUID]*domain.Review), destinations: destinations}
}

func (m *memoryReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	for _, existing := range m.reviews {
		if existing.UserID == review.UserID && existing.DestinationID == review.DestinationID {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *review
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	m.reviews[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	stored, ok := m.reviews[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (m *memoryReviewRepo) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if _, ok := m.reviews[review.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	clone := *review
	m.reviews[review.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryReviewRepo) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*domain.Review, error) {
	stored, ok := m.reviews[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	stored.IsApproved = approved
	out := *stored
	return &out, nil
}

func (m *memoryReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.reviews[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.reviews, id)
	return nil
}

func (m *memoryReviewRepo) ListApprovedByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	out := make([]domain.Review, 0)
	for _, r := range m.reviews {
		if r.DestinationID == destinationID && r.IsApproved {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memoryReviewRepo) CountApprovedByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	items, _ := m.ListApprovedByDestination(ctx, destinationID, 0, 0)
	return int64(len(items)), nil
}

func (m *memoryReviewRepo) ListPending(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	out := make([]domain.Review, 0)
	for _, r := range m.reviews {
		if !r.IsApproved {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memoryReviewRepo) CountPending(ctx context.Context) (int64, error) {
	items, _ := m.ListPending(ctx, 0, 0)
	return int64(len(items)), nil
}

func (m *memoryReviewRepo) RecordApprovedAggregate(ctx context.Context, destinationID uuid.UUID) (*domain.RatingAggregate, error) {
	m.recomputed = append(m.recomputed, destinationID)
	dest, ok := m.destinations.items[destinationID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	ratings := make([]int, 0)
	for _, r := range m.reviews {
		if r.DestinationID == destinationID && r.IsApproved {
			ratings = append(ratings, r.Rating)
		}
	}
	rating, count := planner.ApprovedAggregate(ratings)
	dest.Rating = rating
	dest.ReviewCount = count
	return &domain.RatingAggregate{DestinationID: destinationID, Rating: rating, ReviewCount: count}, nil
}

type memoryFavoriteRepo struct {
	items []domain.Favorite
}

func (m *memoryFavoriteRepo) Add(ctx context.Context, userID, destinationID uuid.UUID) (*domain.Favorite, error) {
	for _, f := range m.items {
		if f.UserID == userID && f.DestinationID == destinationID {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	fav := domain.Favorite{ID: uuid.New(), UserID: userID, DestinationID: destinationID, CreatedAt: time.Now()}
	m.items = append(m.items, fav)
	return &fav, nil
}

func (m *memoryFavoriteRepo) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	for i, f := range m.items {
		if f.UserID == userID && f.DestinationID == destinationID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FavoriteListItem, error) {
	out := make([]domain.FavoriteListItem, 0)
	for _, f := range m.items {
		if f.UserID == userID {
			out = append(out, domain.FavoriteListItem{Favorite: f})
		}
	}
	return out, nil
}

func (m *memoryFavoriteRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	items, _ := m.ListByUser(ctx, userID, 0, 0)
	return int64(len(items)), nil
}

func (m *memoryFavoriteRepo) CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	var n int64
	for _, f := range m.items {
		if f.DestinationID == destinationID {
			n++
		}
	}
	return n, nil
}

type memoryBookingRepo struct {
	items map[uuid.UUID]*domain.Booking
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{items: make(map[uuid.UUID]*domain.Booking)}
}

func (m *memoryBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	clone := *booking
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	m.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (m *memoryBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	stored, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (m *memoryBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	for _, b := range m.items {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memoryBookingRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	items, _ := m.ListByUser(ctx, userID, 0, 0)
	return int64(len(items)), nil
}

func (m *memoryBookingRepo) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	stored, ok := m.items[id]
	if !ok || stored.Status != domain.BookingStatusConfirmed {
		return nil, sql.ErrNoRows
	}
	now := time.Now()
	stored.Status = domain.BookingStatusCancelled
	stored.CancelledAt = &now
	out := *stored
	return &out, nil
}

type fakeStorage struct {
	uploaded []struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}
	removed []string
	url     string
	err     error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	f.uploaded = append(f.uploaded, struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}{bucket: bucket, objectName: objectName, contentType: contentType, size: size})
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://storage/" + objectName, nil
}

func (f *fakeStorage) Remove(ctx context.Context, bucket, objectName string) error {
	f.removed = append(f.removed, objectName)
	return nil
}
