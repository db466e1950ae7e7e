// internal/app/features/clubs/handler.go
package clubs

import (
	"net/http"

	clubstore "github.com/dalemusser/bourbonclub/internal/app/store/clubs"
	membershipstore "github.com/dalemusser/bourbonclub/internal/app/store/memberships"
	userstore "github.com/dalemusser/bourbonclub/internal/app/store/users"
	"github.com/dalemusser/bourbonclub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Sessions records the session's current club.
type Sessions interface {
	SetClub(w http.ResponseWriter, r *http.Request, clubID primitive.ObjectID) error
}

// Handler lists the clubs a user belongs to and switches between them.
// These routes run without a resolved club, so a user with no membership
// can still see that they have none.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	AuditLog    *auditlog.Logger
	Sessions    Sessions
	Clubs       *clubstore.Store
	Users       *userstore.Store
	Memberships *membershipstore.Store
}

func NewHandler(db *mongo.Database, sessions Sessions, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		AuditLog:    audit,
		Sessions:    sessions,
		Clubs:       clubstore.New(db),
		Users:       userstore.New(db),
		Memberships: membershipstore.New(db),
	}
}
