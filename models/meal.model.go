package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealCategory classifies a menu item
type MealCategory string

const (
	MealCategorySoups      MealCategory = "Soups"
	MealCategorySalads     MealCategory = "Salads"
	MealCategorySandwiches MealCategory = "Sandwiches"
	MealCategoryPasta      MealCategory = "Pasta"
)

// Meal represents a menu item. Restaurant is required and immutable after
// creation; User is the creating user, server-assigned from the authenticated
// caller and always equal to the owning restaurant's user.
type Meal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    MealCategory       `bson:"category" json:"category"`
	Restaurant  primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	User        primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
}
