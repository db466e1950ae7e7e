// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/dalemusser/bourbonclub/internal/app/store/audit"
	membershipstore "github.com/dalemusser/bourbonclub/internal/app/store/memberships"
	userstore "github.com/dalemusser/bourbonclub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Audit       *audit.Store
	Users       *userstore.Store
	Memberships *membershipstore.Store
}

// NewHandler constructs an Audit Log feature handler bound to
// the given Mongo database and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Audit:       audit.New(db),
		Users:       userstore.New(db),
		Memberships: membershipstore.New(db),
	}
}
