package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TryOnResult is the in-memory record of the most recent try-on for a
// session: the composite image plus the two inputs that produced it.
type TryOnResult struct {
	ResultImageRef  string `json:"result_image"`
	ModelImageRef   string `json:"model_image"`
	GarmentImageRef string `json:"garment_image"`
	ProductName     string `json:"product_name"`
}

// TryOnSessionRecord is the durable projection of a TryOnResult. Image
// payloads are deliberately excluded; they can exceed storage limits and a
// reload is expected to retain only the textual record.
type TryOnSessionRecord struct {
	SessionID   string `bson:"session_id" json:"-"`
	ProductName string `bson:"product_name" json:"product_name"`
	HasResult   bool   `bson:"has_result" json:"has_result"`
}

// TryOn is the archived record of a completed try-on
type TryOn struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID         string             `bson:"session_id" json:"session_id"`
	ProductID         int                `bson:"product_id" json:"product_id"`
	ProductName       string             `bson:"product_name" json:"product_name"`
	PersonImageKey    string             `bson:"person_image_key" json:"person_image_key"`
	GeneratedImageKey string             `bson:"generated_image_key" json:"generated_image_key"`
	Provider          string             `bson:"provider" json:"provider"` // backend that produced the composite
	Status            string             `bson:"status" json:"status"`     // e.g. "completed", "failed"
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
