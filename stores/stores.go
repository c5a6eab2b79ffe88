// Package stores defines the persistence interfaces the handlers depend on
// and their MongoDB implementations. Handlers receive one store handle per
// entity type; tests substitute in-memory fakes.
package stores

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/models"
)

// UserStore persists user accounts.
type UserStore interface {
	// Create inserts a new user. A duplicate email surfaces as a Conflict
	// error; any other failure propagates unclassified.
	Create(ctx context.Context, user *models.User) error
	// FindByEmail looks a user up by email, password field included.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// RestaurantUpdate carries the mutable restaurant fields; nil means
// "leave unchanged".
type RestaurantUpdate struct {
	Name        *string
	Description *string
	Email       *string
	PhoneNo     *string
	Address     *string
	Category    *models.Category
}

// RestaurantStore persists restaurant documents.
type RestaurantStore interface {
	// Find lists restaurants matching keyword (case-insensitive substring
	// on name; empty matches all) for the given 1-based page.
	Find(ctx context.Context, keyword string, page int) ([]models.Restaurant, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	// FindByMenuEntry locates the restaurant whose menu contains mealID.
	FindByMenuEntry(ctx context.Context, mealID primitive.ObjectID) (*models.Restaurant, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, id primitive.ObjectID, update RestaurantUpdate) (*models.Restaurant, error)
	// AppendImages appends stored-object descriptors to the images list.
	AppendImages(ctx context.Context, id primitive.ObjectID, images []models.Image) (*models.Restaurant, error)
	// PushMenuEntry appends mealID to the menu list, preserving order.
	PushMenuEntry(ctx context.Context, id, mealID primitive.ObjectID) error
	// PullMenuEntry removes mealID from the menu list, preserving the
	// order of the remaining entries.
	PullMenuEntry(ctx context.Context, id, mealID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MealUpdate carries the mutable meal fields; nil means "leave unchanged".
// The restaurant reference is immutable and deliberately absent.
type MealUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *models.MealCategory
}

// MealStore persists meal documents.
type MealStore interface {
	FindAll(ctx context.Context) ([]models.Meal, error)
	FindByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Meal, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error)
	Create(ctx context.Context, meal *models.Meal) error
	Update(ctx context.Context, id primitive.ObjectID, update MealUpdate) (*models.Meal, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TxRunner runs fn inside a single store transaction so that dependent
// writes (meal insert + menu append, menu pull + meal delete) commit or
// abort together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
