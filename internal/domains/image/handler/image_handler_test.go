package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dishModel "restaurant-catalog/internal/domains/dish/model"
	dishService "restaurant-catalog/internal/domains/dish/service"
	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/domains/image/service"
	restaurantModel "restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/testutil"
	"restaurant-catalog/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	router  *gin.Engine
	storage *testutil.Storage
	dish    uuid.UUID
	image   string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB()
	store := testutil.NewStorage()

	r, err := db.Restaurants().Create(ctx, &restaurantModel.Restaurant{Name: "R", Cuisine: "THAI", Address: "x"})
	require.NoError(t, err)
	d, err := db.Dishes().Create(ctx, &dishModel.Dish{Name: "Pad Thai", Price: decimal.NewFromInt(10), RestaurantID: r.ID})
	require.NoError(t, err)

	name := "dishes/" + d.ID.String() + "/1700000000000-abcdef12.png"
	store.Put(name, []byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, db.Dishes().ReplaceImages(ctx, d.ID, []string{name}))

	c := testutil.NewCache()
	owners := dishService.NewImageOwnerStore(db.Dishes(), dishService.Caches{
		ByID:         cache.NewRegion(c, "dishes", time.Minute),
		ByRestaurant: cache.NewRegion(c, "restaurant_dishes", time.Minute),
	})
	h := NewImageHandler(service.NewImageService("dish", owners, store), func(_ context.Context, o image.Owner) (interface{}, error) {
		return o.GetImages(), nil
	})

	router := gin.New()
	router.GET("/dishes/:id/images", h.List)
	router.GET("/dishes/:id/images/*imageName", h.Serve)
	router.DELETE("/dishes/:id/images", h.RemoveOne)
	router.DELETE("/dishes/:id/images/all", h.RemoveAll)
	router.PUT("/dishes/:id/images", h.Register)

	return &env{router: router, storage: store, dish: d.ID, image: name}
}

func (e *env) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestServe_ETagAndNotModified(t *testing.T) {
	e := newEnv(t)
	path := "/dishes/" + e.dish.String() + "/images/" + e.image

	w := e.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "max-age=604800", w.Header().Get("Cache-Control"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	etag := w.Header().Get("ETag")
	assert.Regexp(t, `^"[0-9a-f]{32}"$`, etag)

	w = e.do(http.MethodGet, path, "", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestServe_ForeignImageIsForbidden(t *testing.T) {
	e := newEnv(t)
	e.storage.Put("dishes/other/x.png", []byte("x"))

	w := e.do(http.MethodGet, "/dishes/"+e.dish.String()+"/images/dishes/other/x.png", "", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
}

func TestServe_BadIDAndUnknownDish(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/dishes/not-a-uuid/images/a.png", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/dishes/"+uuid.NewString()+"/images/a.png", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Dish not found","errors":null}`, w.Body.String())
}

func TestList(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/dishes/"+e.dish.String()+"/images", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["`+e.image+`"]`, w.Body.String())
}

func TestRemoveOne_RequiresImageParam(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodDelete, "/dishes/"+e.dish.String()+"/images", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Required parameter 'image' is missing","errors":null}`, w.Body.String())
}

func TestRemoveOneAndAll(t *testing.T) {
	e := newEnv(t)
	base := "/dishes/" + e.dish.String() + "/images"

	w := e.do(http.MethodDelete, base+"?image="+e.image, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.False(t, e.storage.Exists(e.image))

	w = e.do(http.MethodDelete, base+"/all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRegister(t *testing.T) {
	e := newEnv(t)
	base := "/dishes/" + e.dish.String() + "/images"

	w := e.do(http.MethodPut, base, `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Validation failed","errors":{"images":"Image must be not null"}}`, w.Body.String())

	w = e.do(http.MethodPut, base, `{"images":["`+e.image+`"," "]}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image name must be not blank")

	fresh := "dishes/" + e.dish.String() + "/new.jpg"
	w = e.do(http.MethodPut, base, `{"images":["`+fresh+`","`+fresh+`","`+e.image+`"]}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["`+e.image+`","`+fresh+`"]`, w.Body.String())
}

func TestRegister_ForeignNameIsForbidden(t *testing.T) {
	e := newEnv(t)
	foreign := "dishes/" + uuid.NewString() + "/a.jpg"

	w := e.do(http.MethodPut, "/dishes/"+e.dish.String()+"/images", `{"images":["`+foreign+`"]}`, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodGet, "/dishes/"+e.dish.String()+"/images", "", nil)
	assert.JSONEq(t, `["`+e.image+`"]`, w.Body.String())
}
