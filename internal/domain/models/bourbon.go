// internal/domain/models/bourbon.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bourbon is a bottle in a club's catalog.
//
// Numeric attributes are optional. A nil value means "unknown" and is never
// treated as zero by the rating engine.
type Bourbon struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID     primitive.ObjectID `bson:"club_id" json:"club_id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"name_ci"`
	Distillery string             `bson:"distillery,omitempty" json:"distillery,omitempty"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"` // free text: "straight bourbon", "wheated", ...
	Region     string             `bson:"region,omitempty" json:"region,omitempty"`

	Price *float64 `bson:"price,omitempty" json:"price"` // retail price per bottle
	Cost  *float64 `bson:"cost,omitempty" json:"cost"`   // what the club paid
	Proof *float64 `bson:"proof,omitempty" json:"proof"`
	Age   *float64 `bson:"age,omitempty" json:"age"` // years

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
