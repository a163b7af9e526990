package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Sector is a category label industries refer to by name
type Sector struct {
	MongoID primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Code    string             `json:"code,omitempty" bson:"code,omitempty"`
}

// Country is a country industries refer to by name
type Country struct {
	MongoID primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Region  string             `json:"region,omitempty" bson:"region,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
