package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/infrastructure/storage"
	"restaurant-catalog/internal/shared/apperror"
	"restaurant-catalog/internal/testutil"
	"restaurant-catalog/pkg/cache"
)

type fixture struct {
	db      *testutil.DB
	cache   *testutil.Cache
	storage *testutil.Storage
	caches  Caches
	svc     ServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		db:      testutil.NewDB(),
		cache:   testutil.NewCache(),
		storage: testutil.NewStorage(),
	}
	f.caches = Caches{
		ByID:      cache.NewRegion(f.cache, "restaurants", time.Minute),
		All:       cache.NewRegion(f.cache, "restaurants_all", time.Minute),
		ByCuisine: cache.NewRegion(f.cache, "restaurants_cuisine", time.Minute),
		Dishes:    cache.NewRegion(f.cache, "restaurant_dishes", time.Minute),
		DishByID:  cache.NewRegion(f.cache, "dishes", time.Minute),
	}
	f.svc = NewRestaurantService(f.db.Restaurants(), f.caches, f.storage)
	return f
}

func (f *fixture) create(t *testing.T, name, cuisine string) *model.Restaurant {
	t.Helper()
	r, err := f.svc.Create(context.Background(), &model.Restaurant{Name: name, Cuisine: cuisine, Address: "1 Main St"})
	require.NoError(t, err)
	return r
}

func TestCreate_RejectsUnknownCuisineBeforePersisting(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), &model.Restaurant{Name: "A", Cuisine: "MARTIAN", Address: "B"})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindIllegalState, appErr.Kind)
	assert.Equal(t, "Invalid cuisine: MARTIAN", appErr.Message)
	assert.Empty(t, f.db.Calls)
}

func TestCreate_AcceptsDisplayNameAnyCase(t *testing.T) {
	f := newFixture()

	r := f.create(t, "Хачапури", "грузинская")

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "грузинская", r.Cuisine)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestGetAll_CachedUntilWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.create(t, "A", "THAI")

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, f.cache.Has("restaurants_all:all"))

	f.create(t, "B", "THAI")
	assert.False(t, f.cache.Has("restaurants_all:all"))

	all, err = f.svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetAllByCuisine_IgnoresCaseAndAllowList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.create(t, "A", "ITALIAN")
	f.create(t, "B", "Thai")

	// legacy value written around the service
	_, err := f.db.Restaurants().Create(ctx, &model.Restaurant{Name: "Old", Cuisine: "Fusion", Address: "x"})
	require.NoError(t, err)

	italian, err := f.svc.GetAllByCuisine(ctx, "italian")
	require.NoError(t, err)
	require.Len(t, italian, 1)
	assert.Equal(t, "A", italian[0].Name)
	assert.True(t, f.cache.Has("restaurants_cuisine:italian"))

	legacy, err := f.svc.GetAllByCuisine(ctx, "FUSION")
	require.NoError(t, err)
	assert.Len(t, legacy, 1)
}

func TestUpdate_OverwritesOnlyEditableFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.create(t, "A", "ITALIAN")
	require.NoError(t, f.db.Restaurants().ReplaceImages(ctx, r.ID, []string{"restaurants/x/1.jpg"}))

	_, err := f.svc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, f.cache.Has("restaurants:"+r.ID.String()))

	updated, err := f.svc.Update(ctx, &model.Restaurant{ID: r.ID, Name: "B", Cuisine: "japanese", Address: "2 Side St"})
	require.NoError(t, err)

	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, []string{"restaurants/x/1.jpg"}, updated.Images)
	assert.False(t, f.cache.Has("restaurants:"+r.ID.String()))
}

func TestUpdate_InvalidCuisineAndMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Update(ctx, &model.Restaurant{ID: uuid.New(), Name: "B", Cuisine: "??", Address: "x"})
	assert.Equal(t, apperror.KindIllegalState, apperror.KindOf(err))

	_, err = f.svc.Update(ctx, &model.Restaurant{ID: uuid.New(), Name: "B", Cuisine: "THAI", Address: "x"})
	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)
}

func TestDelete_LeavesImageFilesInStorage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.create(t, "A", "ITALIAN")

	up, err := f.svc.UploadImage(ctx, r.ID, &storage.FileUpload{Name: "front.png", Content: bytes.NewReader([]byte("png"))})
	require.NoError(t, err)
	require.Len(t, up.Images, 1)
	name := up.Images[0]

	require.NoError(t, f.cache.Set(ctx, "restaurant_dishes:"+r.ID.String(), []string{}, time.Minute))

	require.NoError(t, f.svc.Delete(ctx, r.ID))

	assert.Empty(t, f.storage.Deletes)
	assert.True(t, f.storage.Exists(name))
	assert.False(t, f.cache.Has("restaurant_dishes:"+r.ID.String()))

	_, err = f.svc.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, r.ID), model.ErrRestaurantNotFound)
}

func TestUploadImage_AppendsOneNamespacedReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.create(t, "A", "ITALIAN")

	first, err := f.svc.UploadImage(ctx, r.ID, &storage.FileUpload{Name: "a.png", Content: bytes.NewReader([]byte("1"))})
	require.NoError(t, err)
	second, err := f.svc.UploadImage(ctx, r.ID, &storage.FileUpload{Name: "a.png", Content: bytes.NewReader([]byte("2"))})
	require.NoError(t, err)

	require.Len(t, first.Images, 1)
	require.Len(t, second.Images, 2)
	assert.Equal(t, first.Images[0], second.Images[0])
	assert.NotEqual(t, second.Images[0], second.Images[1])
	assert.Contains(t, second.Images[1], "restaurants/"+r.ID.String()+"/")

	stored, err := f.svc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Images, stored.Images)
}

func TestUploadImage_UnknownRestaurant(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UploadImage(context.Background(), uuid.New(), &storage.FileUpload{Name: "a.png", Content: bytes.NewReader([]byte("1"))})

	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)
	assert.Empty(t, f.storage.Uploads)
}

func TestExistsAndName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.create(t, "La Bella Italia", "ITALIAN")

	exists, err := f.svc.ExistsByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.svc.ExistsByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	name, err := f.svc.GetNameByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "La Bella Italia", name)
}
