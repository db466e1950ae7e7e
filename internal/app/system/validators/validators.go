// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/bourbonclub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Tenant and identity
	ensure("clubs", clubsSchema())
	ensure("users", usersSchema())
	ensure("club_memberships", membershipsSchema())

	// Tasting records
	ensure("bourbons", bourbonsSchema())
	ensure("reviews", reviewsSchema())
	ensure("meetings", meetingsSchema())
	ensure("meeting_bourbons", meetingBourbonsSchema())
	ensure("rsvps", rsvpsSchema())

	// Engagement and achievements; shape is enforced by unique indexes only.
	ensure("polls", nil)
	ensure("poll_votes", nil)
	ensure("bourbon_suggestions", nil)
	ensure("suggestion_votes", nil)
	ensure("user_achievements", userAchievementsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	return commandErr(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErr(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErr(err, 115, "not implemented", "not supported")
}

// commandErr matches a server error by code or by any of the message fragments.
func commandErr(err error, code int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonEmpty = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	objectID = bson.M{"bsonType": "objectId"}
	optNum   = bson.M{"bsonType": bson.A{"double", "int", "long", "decimal", "null"}}
)

func clubsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci", "status"},
			"properties": bson.M{
				"name":    nonEmpty,
				"name_ci": nonEmpty,
				"status":  bson.M{"enum": bson.A{models.ClubActive, models.ClubArchived}},
			},
		},
	}
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name"},
			"properties": bson.M{
				"full_name":       nonEmpty,
				"email":           bson.M{"bsonType": bson.A{"string", "null"}},
				"status":          bson.M{"enum": bson.A{models.UserActive, models.UserDisabled}},
				"current_club_id": bson.M{"bsonType": bson.A{"objectId", "null"}},
			},
		},
	}
}

func membershipsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "club_id", "role"},
			"properties": bson.M{
				"user_id": objectID,
				"club_id": objectID,
				"role":    bson.M{"enum": bson.A{models.RoleAdmin, models.RoleMember}},
			},
		},
	}
}

func bourbonsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"club_id", "name", "name_ci"},
			"properties": bson.M{
				"club_id": objectID,
				"name":    nonEmpty,
				"name_ci": nonEmpty,
				"price":   optNum,
				"cost":    optNum,
				"proof":   optNum,
				"age":     optNum,
			},
		},
	}
}

func reviewsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"club_id", "bourbon_id", "user_id", "standalone", "rating"},
			"properties": bson.M{
				"club_id":            objectID,
				"bourbon_id":         objectID,
				"user_id":            objectID,
				"meeting_bourbon_id": objectID,
				"standalone":         bson.M{"bsonType": "bool"},
				"rating":             bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
			},
		},
	}
}

func meetingsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"club_id", "title", "date"},
			"properties": bson.M{
				"club_id": objectID,
				"title":   nonEmpty,
				"date":    bson.M{"bsonType": "date"},
			},
		},
	}
}

func meetingBourbonsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"club_id", "meeting_id", "bourbon_id"},
			"properties": bson.M{
				"club_id":    objectID,
				"meeting_id": objectID,
				"bourbon_id": objectID,
			},
		},
	}
}

func rsvpsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "meeting_id", "club_id", "status"},
			"properties": bson.M{
				"user_id":    objectID,
				"meeting_id": objectID,
				"club_id":    objectID,
				"status":     bson.M{"enum": bson.A{models.RSVPGoing, models.RSVPMaybe, models.RSVPNotGoing}},
			},
		},
	}
}

func userAchievementsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "key", "earned_at"},
			"properties": bson.M{
				"user_id":   objectID,
				"key":       nonEmpty,
				"earned_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
