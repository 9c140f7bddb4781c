package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-catalog/internal/config"
	"restaurant-catalog/internal/testutil"
	"restaurant-catalog/pkg/container"
	"restaurant-catalog/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
}

type fakeQueue struct {
	tasks []string
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task.Type())
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

type app struct {
	t       *testing.T
	router  *gin.Engine
	db      *testutil.DB
	storage *testutil.Storage
	queue   *fakeQueue
	jwt     *jwt.Manager
	checks  map[string]container.HealthCheck
}

func newApp(t *testing.T) *app {
	return newAppWithConfig(t, nil)
}

func newAppWithConfig(t *testing.T, cfg *config.Config) *app {
	t.Helper()

	a := &app{
		t:       t,
		db:      testutil.NewDB(),
		storage: testutil.NewStorage(),
		queue:   &fakeQueue{},
		jwt:     jwt.NewManager("test-secret", "restaurant-catalog"),
		checks:  map[string]container.HealthCheck{},
	}

	c := &container.Container{
		Config:     cfg,
		Cache:      testutil.NewCache(),
		JWTManager: a.jwt,
		Checks:     a.checks,
	}
	c.WireDomains(a.db.Restaurants(), a.db.Dishes(), a.storage, a.queue)
	a.router = SetupRouter(c)
	return a
}

func (a *app) token(roles ...string) string {
	tok, err := a.jwt.GenerateAccessToken("user-1", roles, time.Hour)
	require.NoError(a.t, err)
	return tok
}

func (a *app) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) upload(path, fileName string, data []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(a.t, err)
	_, err = part.Write(data)
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) createRestaurantWithDish(token string) (restaurantID, dishID string) {
	w := a.request(http.MethodPost, "/api/v1/restaurants", gin.H{"name": "La Bella Italia", "cuisine": "ITALIAN", "address": "Via Roma 1"}, token)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	restaurantID = decode(a.t, w)["id"].(string)

	w = a.request(http.MethodPost, "/api/v1/restaurants/"+restaurantID+"/dishes", gin.H{"name": "Margherita", "price": 12.99}, token)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	dishID = decode(a.t, w)["id"].(string)
	return restaurantID, dishID
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRestaurantAndDishLifecycle(t *testing.T) {
	a := newApp(t)
	admin := a.token(jwt.RoleAdmin)

	// create restaurant
	w := a.request(http.MethodPost, "/api/v1/restaurants", gin.H{
		"name":    "La Bella Italia",
		"cuisine": "italian",
		"address": "Via Roma 1",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	restaurant := decode(t, w)
	restaurantID := restaurant["id"].(string)
	assert.Equal(t, "La Bella Italia", restaurant["name"])
	assert.Equal(t, []interface{}{}, restaurant["dishes"])

	// add a dish
	w = a.request(http.MethodPost, "/api/v1/restaurants/"+restaurantID+"/dishes", gin.H{
		"name":        "Margherita",
		"description": "Tomato, mozzarella, basil",
		"price":       12.99,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	dish := decode(t, w)
	dishID := dish["id"].(string)
	assert.Equal(t, 12.99, dish["price"])
	assert.Equal(t, restaurantID, dish["restaurant_id"])

	// restaurant now embeds its dish
	w = a.request(http.MethodGet, "/api/v1/restaurants/"+restaurantID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	dishes := decode(t, w)["dishes"].([]interface{})
	require.Len(t, dishes, 1)
	assert.Equal(t, "Margherita", dishes[0].(map[string]interface{})["name"])

	// filter by cuisine ignores case
	w = a.request(http.MethodGet, "/api/v1/restaurants/cuisine?cuisine=ITALIAN", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "La Bella Italia")

	// existence and name need a token
	w = a.request(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/dishes/"+dishID+"/exists", nil, a.token("ROLE_USER"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())

	w = a.request(http.MethodGet, "/api/v1/dishes/"+dishID+"/name", nil, a.token("ROLE_USER"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dish_name":"Margherita"}`, w.Body.String())

	// update the price
	w = a.request(http.MethodPut, "/api/v1/dishes", gin.H{
		"id":          dishID,
		"name":        "Margherita",
		"description": "Tomato, mozzarella, basil",
		"price":       "13.50",
	}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 13.5, decode(t, w)["price"])

	// deleting the restaurant removes its dishes
	w = a.request(http.MethodDelete, "/api/v1/restaurants/"+restaurantID, nil, admin)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.request(http.MethodGet, "/api/v1/dishes/"+dishID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.request(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/exists", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Body.String())
}

func TestCreateRestaurant_Validation(t *testing.T) {
	a := newApp(t)
	admin := a.token(jwt.RoleManager)

	w := a.request(http.MethodPost, "/api/v1/restaurants", gin.H{"name": " ", "cuisine": "ITALIAN", "address": "x"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Validation failed","errors":{"name":"Restaurant name must be not blank"}}`, w.Body.String())

	w = a.request(http.MethodPost, "/api/v1/restaurants", gin.H{"name": "Sushi", "cuisine": "KLINGON", "address": "x"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid cuisine: KLINGON","errors":null}`, w.Body.String())

	w = a.request(http.MethodPost, "/api/v1/restaurants/"+"not-a-uuid"+"/dishes", gin.H{"name": "x", "price": 1}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid id: not-a-uuid","errors":null}`, w.Body.String())
}

func TestAccessControl(t *testing.T) {
	a := newApp(t)
	body := gin.H{"name": "Diner", "cuisine": "AMERICAN", "address": "Main St"}

	w := a.request(http.MethodPost, "/api/v1/restaurants", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.request(http.MethodPost, "/api/v1/restaurants", body, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.request(http.MethodPost, "/api/v1/restaurants", body, a.token("ROLE_USER"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.request(http.MethodGet, "/api/v1/restaurants", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = a.request(http.MethodGet, "/api/v1/restaurants/cuisines", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"ITALIAN"`)
}

func TestDishImageUpload(t *testing.T) {
	a := newApp(t)
	admin := a.token(jwt.RoleAdmin)

	w := a.request(http.MethodPost, "/api/v1/restaurants", gin.H{"name": "Bangkok", "cuisine": "THAI", "address": "x"}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	restaurantID := decode(t, w)["id"].(string)

	w = a.request(http.MethodPost, "/api/v1/restaurants/"+restaurantID+"/dishes", gin.H{"name": "Pad Thai", "price": 9}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	dishID := decode(t, w)["id"].(string)

	rec := a.upload("/api/v1/dishes/"+dishID+"/images", "pad-thai.jpg", []byte{0xff, 0xd8, 0xff, 0xe0}, admin)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	images := decode(t, rec)["images"].([]interface{})
	require.Len(t, images, 1)
	name := images[0].(string)
	assert.True(t, strings.HasPrefix(name, "dishes/"+dishID+"/"))
	assert.True(t, a.storage.Exists(name))

	w = a.request(http.MethodGet, "/api/v1/dishes/"+dishID+"/images/"+name, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))

	w = a.request(http.MethodPost, "/api/v1/dishes/"+dishID+"/images/upload-url?file_name=menu.png", nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode(t, w)["upload_url"], "X-Amz-Expires")
}

func TestAuditTrigger(t *testing.T) {
	a := newApp(t)

	w := a.request(http.MethodPost, "/api/v1/images/audit", nil, a.token(jwt.RoleAdmin))

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"task_id":"task-1"}`, w.Body.String())
	assert.Equal(t, []string{"image:audit_orphans"}, a.queue.tasks)
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	a.checks["database"] = func(context.Context) error { return nil }
	a.checks["redis"] = func(context.Context) error { return errors.New("connection refused") }

	w := a.request(http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "ok", body["services"].(map[string]interface{})["database"])

	a.checks["database"] = func(context.Context) error { return errors.New("down") }
	w = a.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDeleteDish_EmptiesRestaurantDishList(t *testing.T) {
	a := newApp(t)
	admin := a.token(jwt.RoleAdmin)
	restaurantID, dishID := a.createRestaurantWithDish(admin)

	// warm the restaurant_dishes entry
	w := a.request(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/dishes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var dishes []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dishes))
	require.Len(t, dishes, 1)
	assert.Equal(t, 12.99, dishes[0]["price"])

	w = a.request(http.MethodDelete, "/api/v1/dishes/"+dishID, nil, admin)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.request(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/dishes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = a.request(http.MethodGet, "/api/v1/restaurants/"+restaurantID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decode(t, w)["dishes"])
}

func TestUploadImage_RespectsMaxUploadSize(t *testing.T) {
	a := newAppWithConfig(t, &config.Config{App: config.AppConfig{MaxUploadMB: 1}})
	admin := a.token(jwt.RoleAdmin)
	_, dishID := a.createRestaurantWithDish(admin)

	jpeg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 8<<20)...)
	w := a.upload("/api/v1/dishes/"+dishID+"/images", "big.jpg", jpeg, admin)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, a.storage.Uploads)

	w = a.upload("/api/v1/dishes/"+dishID+"/images", "small.jpg", []byte{0xff, 0xd8, 0xff, 0xe0}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, a.storage.Uploads, 1)
}
