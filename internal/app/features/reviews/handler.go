// internal/app/features/reviews/handler.go
package reviews

import (
	bourbonstore "github.com/dalemusser/bourbonclub/internal/app/store/bourbons"
	meetingstore "github.com/dalemusser/bourbonclub/internal/app/store/meetings"
	membershipstore "github.com/dalemusser/bourbonclub/internal/app/store/memberships"
	reviewstore "github.com/dalemusser/bourbonclub/internal/app/store/reviews"
	"github.com/dalemusser/bourbonclub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the review lifecycle: create, edit, and delete.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	AuditLog    *auditlog.Logger
	Reviews     *reviewstore.Store
	Bourbons    *bourbonstore.Store
	Meetings    *meetingstore.Store
	Memberships *membershipstore.Store
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		AuditLog:    audit,
		Reviews:     reviewstore.New(db),
		Bourbons:    bourbonstore.New(db),
		Meetings:    meetingstore.New(db),
		Memberships: membershipstore.New(db),
	}
}
