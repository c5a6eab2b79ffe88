package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/apperrors"
	"restaurant-api/controllers"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/routes"
	"restaurant-api/stores"
	"restaurant-api/utils"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.New(apperrors.KindConflict, "Duplicate email entered.")
		}
	}
	user.ID = primitive.NewObjectID()
	copied := *user
	s.users[user.ID.Hex()] = &copied
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.KindNotFound, "User not found.")
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id.Hex()]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "User not found.")
	}
	copied := *user
	return &copied, nil
}

// fakeRestaurantStore is an in-memory RestaurantStore preserving insertion order.
type fakeRestaurantStore struct {
	restaurants []*models.Restaurant
}

func (s *fakeRestaurantStore) get(id primitive.ObjectID) *models.Restaurant {
	for _, r := range s.restaurants {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func copyRestaurant(r *models.Restaurant) *models.Restaurant {
	copied := *r
	copied.Menu = append([]primitive.ObjectID{}, r.Menu...)
	copied.Images = append([]models.Image{}, r.Images...)
	return &copied
}

func (s *fakeRestaurantStore) Find(_ context.Context, keyword string, page int) ([]models.Restaurant, error) {
	matched := []models.Restaurant{}
	for _, r := range s.restaurants {
		if keyword == "" || strings.Contains(strings.ToLower(r.Name), strings.ToLower(keyword)) {
			matched = append(matched, *copyRestaurant(r))
		}
	}
	const perPage = 5
	start := perPage * (page - 1)
	if start >= len(matched) {
		return []models.Restaurant{}, nil
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (s *fakeRestaurantStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	if r := s.get(id); r != nil {
		return copyRestaurant(r), nil
	}
	return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
}

func (s *fakeRestaurantStore) FindByMenuEntry(_ context.Context, mealID primitive.ObjectID) (*models.Restaurant, error) {
	for _, r := range s.restaurants {
		for _, entry := range r.Menu {
			if entry == mealID {
				return copyRestaurant(r), nil
			}
		}
	}
	return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
}

func (s *fakeRestaurantStore) Create(_ context.Context, restaurant *models.Restaurant) error {
	restaurant.ID = primitive.NewObjectID()
	s.restaurants = append(s.restaurants, copyRestaurant(restaurant))
	return nil
}

func (s *fakeRestaurantStore) Update(_ context.Context, id primitive.ObjectID, update stores.RestaurantUpdate) (*models.Restaurant, error) {
	r := s.get(id)
	if r == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	if update.Name != nil {
		r.Name = *update.Name
	}
	if update.Description != nil {
		r.Description = *update.Description
	}
	if update.Email != nil {
		r.Email = *update.Email
	}
	if update.PhoneNo != nil {
		r.PhoneNo = *update.PhoneNo
	}
	if update.Address != nil {
		r.Address = *update.Address
	}
	if update.Category != nil {
		r.Category = *update.Category
	}
	return copyRestaurant(r), nil
}

func (s *fakeRestaurantStore) AppendImages(_ context.Context, id primitive.ObjectID, images []models.Image) (*models.Restaurant, error) {
	r := s.get(id)
	if r == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	r.Images = append(r.Images, images...)
	return copyRestaurant(r), nil
}

func (s *fakeRestaurantStore) PushMenuEntry(_ context.Context, id, mealID primitive.ObjectID) error {
	r := s.get(id)
	if r == nil {
		return apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	r.Menu = append(r.Menu, mealID)
	return nil
}

func (s *fakeRestaurantStore) PullMenuEntry(_ context.Context, id, mealID primitive.ObjectID) error {
	r := s.get(id)
	if r == nil {
		return apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	remaining := []primitive.ObjectID{}
	for _, entry := range r.Menu {
		if entry != mealID {
			remaining = append(remaining, entry)
		}
	}
	r.Menu = remaining
	return nil
}

func (s *fakeRestaurantStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, r := range s.restaurants {
		if r.ID == id {
			s.restaurants = append(s.restaurants[:i], s.restaurants[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeMealStore is an in-memory MealStore.
type fakeMealStore struct {
	meals []*models.Meal
}

func (s *fakeMealStore) get(id primitive.ObjectID) *models.Meal {
	for _, m := range s.meals {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *fakeMealStore) FindAll(_ context.Context) ([]models.Meal, error) {
	meals := []models.Meal{}
	for _, m := range s.meals {
		meals = append(meals, *m)
	}
	return meals, nil
}

func (s *fakeMealStore) FindByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]models.Meal, error) {
	meals := []models.Meal{}
	for _, m := range s.meals {
		if m.Restaurant == restaurantID {
			meals = append(meals, *m)
		}
	}
	return meals, nil
}

func (s *fakeMealStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Meal, error) {
	if m := s.get(id); m != nil {
		copied := *m
		return &copied, nil
	}
	return nil, apperrors.New(apperrors.KindNotFound, "Meal not found with this ID.")
}

func (s *fakeMealStore) Create(_ context.Context, meal *models.Meal) error {
	meal.ID = primitive.NewObjectID()
	copied := *meal
	s.meals = append(s.meals, &copied)
	return nil
}

func (s *fakeMealStore) Update(_ context.Context, id primitive.ObjectID, update stores.MealUpdate) (*models.Meal, error) {
	m := s.get(id)
	if m == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Meal not found with this ID.")
	}
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Description != nil {
		m.Description = *update.Description
	}
	if update.Price != nil {
		m.Price = *update.Price
	}
	if update.Category != nil {
		m.Category = *update.Category
	}
	copied := *m
	return &copied, nil
}

func (s *fakeMealStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, m := range s.meals {
		if m.ID == id {
			s.meals = append(s.meals[:i], s.meals[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeTxRunner runs the callback directly; the fakes have no transactions.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeStorage records uploads and can be told to fail deletion.
type fakeStorage struct {
	failDelete bool
	deleted    [][]models.Image
}

func (s *fakeStorage) Upload(_ context.Context, restaurantID string, files []utils.UploadFile) ([]models.Image, error) {
	images := make([]models.Image, 0, len(files))
	for _, file := range files {
		images = append(images, models.Image{
			Key:    "restaurants/" + restaurantID + "/" + file.Name,
			URL:    "https://bucket.example.com/" + file.Name,
			Bucket: "bucket",
		})
	}
	return images, nil
}

func (s *fakeStorage) Delete(_ context.Context, images []models.Image) bool {
	if s.failDelete {
		return false
	}
	s.deleted = append(s.deleted, images)
	return true
}

// fakeGeocoder returns a canned location.
type fakeGeocoder struct {
	fail bool
}

func (g *fakeGeocoder) Lookup(_ context.Context, address string) (*models.Location, error) {
	if g.fail {
		return nil, context.DeadlineExceeded
	}
	return &models.Location{
		Type:             "Point",
		Coordinates:      []float64{21.01, 52.23},
		FormattedAddress: address,
		Country:          "Poland",
		City:             "Warsaw",
	}, nil
}

// testEnv wires the full router over in-memory fakes.
type testEnv struct {
	users       *fakeUserStore
	restaurants *fakeRestaurantStore
	meals       *fakeMealStore
	storage     *fakeStorage
	geocoder    *fakeGeocoder
	router      *mux.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.JwtKey = []byte("test-signing-key")

	env := &testEnv{
		users:       newFakeUserStore(),
		restaurants: &fakeRestaurantStore{},
		meals:       &fakeMealStore{},
		storage:     &fakeStorage{},
		geocoder:    &fakeGeocoder{},
	}

	env.router = mux.NewRouter()
	routes.RegisterRoutes(
		env.router,
		middleware.NewAuthMiddleware(env.users),
		controllers.NewAuthController(env.users, nil),
		controllers.NewRestaurantController(env.restaurants, env.storage, env.geocoder),
		controllers.NewMealController(env.meals, env.restaurants, fakeTxRunner{}),
	)
	return env
}

// do sends a JSON request through the router.
func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// signUp registers a user through the API and returns its token.
func (env *testEnv) signUp(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

// createRestaurant creates a restaurant through the API and returns it.
func (env *testEnv) createRestaurant(t *testing.T, token, name string) models.Restaurant {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/restaurants", token, map[string]interface{}{
		"name":        name,
		"description": "A cozy place",
		"email":       "contact@" + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com",
		"phoneNo":     "+48123456789",
		"address":     "1 Main Street, Warsaw",
		"category":    "Cafe",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var restaurant models.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restaurant))
	return restaurant
}

// createMeal creates a meal through the API and returns it.
func (env *testEnv) createMeal(t *testing.T, token, name, restaurantID string) models.Meal {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/meals", token, map[string]interface{}{
		"name":        name,
		"description": "Tasty",
		"price":       9.5,
		"category":    "Soups",
		"restaurant":  restaurantID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var meal models.Meal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meal))
	return meal
}
