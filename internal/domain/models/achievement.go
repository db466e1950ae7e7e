// internal/domain/models/achievement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAchievement records that a user earned an achievement.
// Append-only; exactly one document per (user_id, key).
// Achievement definitions themselves live in code (engine/achievements).
type UserAchievement struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Key      string             `bson:"key" json:"key"`
	EarnedAt time.Time          `bson:"earned_at" json:"earned_at"`
}
