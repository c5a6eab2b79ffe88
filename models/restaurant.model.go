package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category classifies a restaurant
type Category string

const (
	CategoryFastFood   Category = "Fast Food"
	CategoryCafe       Category = "Cafe"
	CategoryFineDining Category = "Fine Dinning"
)

// Image describes an object stored in the image bucket
type Image struct {
	Key    string `bson:"key" json:"key"`
	URL    string `bson:"url" json:"url"`
	Bucket string `bson:"bucket" json:"bucket"`
	ETag   string `bson:"etag,omitempty" json:"etag,omitempty"`
}

// Location is the geocoding result derived from a restaurant's address.
// Coordinates are GeoJSON order: [longitude, latitude].
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"`
	FormattedAddress string    `bson:"formattedAddress,omitempty" json:"formattedAddress,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	StreetName       string    `bson:"streetName,omitempty" json:"streetName,omitempty"`
	StreetNumber     string    `bson:"streetNumber,omitempty" json:"streetNumber,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
}

// Restaurant represents a directory entry. User is the owner and is set from
// the authenticated caller at creation, never from client input. Menu holds
// the ids of this restaurant's meals in creation order; every id in Menu must
// belong to a meal whose Restaurant field points back here.
type Restaurant struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Email       string               `bson:"email" json:"email"`
	PhoneNo     string               `bson:"phoneNo" json:"phoneNo"`
	Address     string               `bson:"address" json:"address"`
	Category    Category             `bson:"category" json:"category"`
	Images      []Image              `bson:"images" json:"images"`
	Location    *Location            `bson:"location,omitempty" json:"location,omitempty"`
	Menu        []primitive.ObjectID `bson:"menu" json:"menu"`
	User        primitive.ObjectID   `bson:"user,omitempty" json:"user,omitempty"`
}
