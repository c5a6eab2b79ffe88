package stores

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant-api/apperrors"
	"restaurant-api/models"
)

// MongoMealStore is the MongoDB implementation of MealStore.
type MongoMealStore struct {
	collection *mongo.Collection
}

// NewMealStore creates a meal store on the "meals" collection.
func NewMealStore(db *mongo.Database) *MongoMealStore {
	return &MongoMealStore{collection: db.Collection("meals")}
}

func (s *MongoMealStore) FindAll(ctx context.Context) ([]models.Meal, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoMealStore) FindByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Meal, error) {
	return s.find(ctx, bson.M{"restaurant": restaurantID})
}

func (s *MongoMealStore) find(ctx context.Context, filter bson.M) ([]models.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	meals := []models.Meal{}
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (s *MongoMealStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var meal models.Meal
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.KindNotFound, "Meal not found with this ID.")
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MongoMealStore) Create(ctx context.Context, meal *models.Meal) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.collection.InsertOne(ctx, meal)
	if err != nil {
		return err
	}
	meal.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoMealStore) Update(ctx context.Context, id primitive.ObjectID, update MealUpdate) (*models.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	after := options.After
	var meal models.Meal
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&meal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.KindNotFound, "Meal not found with this ID.")
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MongoMealStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
