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

// resultsPerPage is the fixed page size for restaurant listings.
const resultsPerPage = 5

// MongoRestaurantStore is the MongoDB implementation of RestaurantStore.
type MongoRestaurantStore struct {
	collection *mongo.Collection
}

// NewRestaurantStore creates a restaurant store on the "restaurants" collection.
func NewRestaurantStore(db *mongo.Database) *MongoRestaurantStore {
	return &MongoRestaurantStore{collection: db.Collection("restaurants")}
}

func (s *MongoRestaurantStore) Find(ctx context.Context, keyword string, page int) ([]models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{}
	if keyword != "" {
		filter["name"] = bson.M{"$regex": keyword, "$options": "i"}
	}
	if page < 1 {
		page = 1
	}
	skip := int64(resultsPerPage * (page - 1))
	limit := int64(resultsPerPage)

	cursor, err := s.collection.Find(ctx, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *MongoRestaurantStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var restaurant models.Restaurant
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *MongoRestaurantStore) FindByMenuEntry(ctx context.Context, mealID primitive.ObjectID) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var restaurant models.Restaurant
	err := s.collection.FindOne(ctx, bson.M{"menu": mealID}).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *MongoRestaurantStore) Create(ctx context.Context, restaurant *models.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.collection.InsertOne(ctx, restaurant)
	if err != nil {
		return err
	}
	restaurant.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoRestaurantStore) Update(ctx context.Context, id primitive.ObjectID, update RestaurantUpdate) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PhoneNo != nil {
		set["phoneNo"] = *update.PhoneNo
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	after := options.After
	var restaurant models.Restaurant
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *MongoRestaurantStore) AppendImages(ctx context.Context, id primitive.ObjectID, images []models.Image) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	after := options.After
	var restaurant models.Restaurant
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"images": bson.M{"$each": images}}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *MongoRestaurantStore) PushMenuEntry(ctx context.Context, id, mealID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"menu": mealID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	return nil
}

func (s *MongoRestaurantStore) PullMenuEntry(ctx context.Context, id, mealID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"menu": mealID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "Restaurant not found.")
	}
	return nil
}

func (s *MongoRestaurantStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
