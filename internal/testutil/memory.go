// Package testutil holds in-memory stand-ins for Postgres, Redis and object storage.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	dishModel "restaurant-catalog/internal/domains/dish/model"
	restaurantModel "restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/infrastructure/storage"
)

// ========================================
// DATABASE
// ========================================

// DB keeps restaurants and dishes together so deleting a restaurant cascades to its dishes
type DB struct {
	mu          sync.Mutex
	restaurants map[uuid.UUID]*restaurantModel.Restaurant
	dishes      map[uuid.UUID]*dishModel.Dish
	seq         int

	// Calls records repository writes in order, e.g. "dish.Delete"
	Calls []string
}

func NewDB() *DB {
	return &DB{
		restaurants: map[uuid.UUID]*restaurantModel.Restaurant{},
		dishes:      map[uuid.UUID]*dishModel.Dish{},
	}
}

func (db *DB) Restaurants() *RestaurantRepo { return &RestaurantRepo{db: db} }
func (db *DB) Dishes() *DishRepo            { return &DishRepo{db: db} }

func (db *DB) record(call string) {
	db.Calls = append(db.Calls, call)
}

// tick orders rows by creation like the created_at column would
func (db *DB) tick() time.Time {
	db.seq++
	return time.Unix(1_700_000_000, 0).Add(time.Duration(db.seq) * time.Second)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ----------------------------------------
// RESTAURANTS
// ----------------------------------------

type RestaurantRepo struct {
	db *DB
}

func cloneRestaurant(r *restaurantModel.Restaurant) *restaurantModel.Restaurant {
	c := *r
	c.Images = copyStrings(r.Images)
	return &c
}

func (r *RestaurantRepo) Create(_ context.Context, rest *restaurantModel.Restaurant) (*restaurantModel.Restaurant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c := cloneRestaurant(rest)
	c.ID = uuid.New()
	c.CreatedAt = r.db.tick()
	c.UpdatedAt = c.CreatedAt
	r.db.restaurants[c.ID] = c
	r.db.record("restaurant.Create")
	return cloneRestaurant(c), nil
}

func (r *RestaurantRepo) GetByID(_ context.Context, id uuid.UUID) (*restaurantModel.Restaurant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rest, ok := r.db.restaurants[id]
	if !ok {
		return nil, restaurantModel.ErrRestaurantNotFound
	}
	return cloneRestaurant(rest), nil
}

func (r *RestaurantRepo) filter(keep func(*restaurantModel.Restaurant) bool) []*restaurantModel.Restaurant {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]*restaurantModel.Restaurant, 0)
	for _, rest := range r.db.restaurants {
		if keep(rest) {
			out = append(out, cloneRestaurant(rest))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *RestaurantRepo) GetAll(_ context.Context) ([]*restaurantModel.Restaurant, error) {
	return r.filter(func(*restaurantModel.Restaurant) bool { return true }), nil
}

func (r *RestaurantRepo) GetAllByCuisine(_ context.Context, cuisine string) ([]*restaurantModel.Restaurant, error) {
	return r.filter(func(rest *restaurantModel.Restaurant) bool {
		return strings.EqualFold(rest.Cuisine, cuisine)
	}), nil
}

func (r *RestaurantRepo) Update(_ context.Context, rest *restaurantModel.Restaurant) (*restaurantModel.Restaurant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.restaurants[rest.ID]
	if !ok {
		return nil, restaurantModel.ErrRestaurantNotFound
	}
	stored.Name = rest.Name
	stored.Cuisine = rest.Cuisine
	stored.Address = rest.Address
	stored.UpdatedAt = r.db.tick()
	r.db.record("restaurant.Update")
	return cloneRestaurant(stored), nil
}

func (r *RestaurantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.restaurants[id]; !ok {
		return restaurantModel.ErrRestaurantNotFound
	}
	delete(r.db.restaurants, id)
	for dishID, d := range r.db.dishes {
		if d.RestaurantID == id {
			delete(r.db.dishes, dishID)
		}
	}
	r.db.record("restaurant.Delete")
	return nil
}

func (r *RestaurantRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, ok := r.db.restaurants[id]
	return ok, nil
}

func (r *RestaurantRepo) GetNameByID(_ context.Context, id uuid.UUID) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rest, ok := r.db.restaurants[id]
	if !ok {
		return "", restaurantModel.ErrRestaurantNotFound
	}
	return rest.Name, nil
}

func (r *RestaurantRepo) ReplaceImages(_ context.Context, id uuid.UUID, images []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rest, ok := r.db.restaurants[id]
	if !ok {
		return restaurantModel.ErrRestaurantNotFound
	}
	rest.Images = copyStrings(images)
	r.db.record("restaurant.ReplaceImages")
	return nil
}

func (r *RestaurantRepo) ListImageNames(_ context.Context) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var names []string
	for _, rest := range r.db.restaurants {
		names = append(names, rest.Images...)
	}
	return names, nil
}

// ----------------------------------------
// DISHES
// ----------------------------------------

type DishRepo struct {
	db *DB
}

func cloneDish(d *dishModel.Dish) *dishModel.Dish {
	c := *d
	c.Images = copyStrings(d.Images)
	return &c
}

func (r *DishRepo) Create(_ context.Context, d *dishModel.Dish) (*dishModel.Dish, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.restaurants[d.RestaurantID]; !ok {
		return nil, fmt.Errorf("failed to create dish: foreign key violation")
	}
	c := cloneDish(d)
	c.ID = uuid.New()
	c.CreatedAt = r.db.tick()
	c.UpdatedAt = c.CreatedAt
	r.db.dishes[c.ID] = c
	r.db.record("dish.Create")
	return cloneDish(c), nil
}

func (r *DishRepo) GetByID(_ context.Context, id uuid.UUID) (*dishModel.Dish, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.dishes[id]
	if !ok {
		return nil, dishModel.ErrDishNotFound
	}
	return cloneDish(d), nil
}

func (r *DishRepo) GetAllByRestaurantID(_ context.Context, restaurantID uuid.UUID) ([]*dishModel.Dish, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]*dishModel.Dish, 0)
	for _, d := range r.db.dishes {
		if d.RestaurantID == restaurantID {
			out = append(out, cloneDish(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *DishRepo) Update(_ context.Context, d *dishModel.Dish) (*dishModel.Dish, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.dishes[d.ID]
	if !ok {
		return nil, dishModel.ErrDishNotFound
	}
	stored.Name = d.Name
	stored.Description = d.Description
	stored.Price = d.Price
	stored.UpdatedAt = r.db.tick()
	r.db.record("dish.Update")
	return cloneDish(stored), nil
}

func (r *DishRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.dishes[id]; !ok {
		return dishModel.ErrDishNotFound
	}
	delete(r.db.dishes, id)
	r.db.record("dish.Delete")
	return nil
}

func (r *DishRepo) FindOwnerID(_ context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.dishes[id]
	if !ok {
		return uuid.Nil, false, nil
	}
	return d.RestaurantID, true, nil
}

func (r *DishRepo) GetNameByID(_ context.Context, id uuid.UUID) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.dishes[id]
	if !ok {
		return "", dishModel.ErrDishNotFound
	}
	return d.Name, nil
}

func (r *DishRepo) ReplaceImages(_ context.Context, id uuid.UUID, images []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.dishes[id]
	if !ok {
		return dishModel.ErrDishNotFound
	}
	d.Images = copyStrings(images)
	r.db.record("dish.ReplaceImages")
	return nil
}

func (r *DishRepo) ListImageNames(_ context.Context) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var names []string
	for _, d := range r.db.dishes {
		names = append(names, d.Images...)
	}
	return names, nil
}

// ========================================
// CACHE
// ========================================

// Cache is a JSON round-tripping cache.Cache, so cached values behave like Redis ones
type Cache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewCache() *Cache {
	return &Cache{items: map[string][]byte{}}
}

func (c *Cache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = raw
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

// DeletePattern supports the "<prefix>*" patterns regions use
func (c *Cache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *Cache) Ping(context.Context) error { return nil }

// Has reports whether key is cached
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	return ok
}

// ========================================
// STORAGE
// ========================================

// Storage keeps objects in memory and records every call
type Storage struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailDelete makes Delete of that name fail
	FailDelete map[string]error

	Uploads []string
	Deletes []string
}

func NewStorage() *Storage {
	return &Storage{
		objects:    map[string][]byte{},
		FailDelete: map[string]error{},
	}
}

func (s *Storage) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data
}

func (s *Storage) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[name]
	return ok
}

func (s *Storage) Upload(_ context.Context, prefix string, ownerID uuid.UUID, file *storage.FileUpload) (string, error) {
	if file == nil || file.Content == nil || file.Name == "" {
		return "", errors.New("missing file")
	}
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return "", err
	}

	name := storage.GenerateFileName(prefix, ownerID, file.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data
	s.Uploads = append(s.Uploads, name)
	return name, nil
}

func (s *Storage) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Deletes = append(s.Deletes, name)
	if err, ok := s.FailDelete[name]; ok {
		return err
	}
	delete(s.objects, name)
	return nil
}

func (s *Storage) PresignUpload(_ context.Context, name string) (string, error) {
	return "http://storage.local/bucket/" + name + "?X-Amz-Expires=3600", nil
}

func (s *Storage) Get(_ context.Context, name string) (*storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("object %s not found", name)
	}
	return &storage.Object{Name: name, Data: data, ContentType: storage.ContentTypeFor(name, data)}, nil
}

func (s *Storage) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for name := range s.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
