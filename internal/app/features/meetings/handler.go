// internal/app/features/meetings/handler.go
package meetings

import (
	bourbonstore "github.com/dalemusser/bourbonclub/internal/app/store/bourbons"
	meetingstore "github.com/dalemusser/bourbonclub/internal/app/store/meetings"
	membershipstore "github.com/dalemusser/bourbonclub/internal/app/store/memberships"
	rsvpstore "github.com/dalemusser/bourbonclub/internal/app/store/rsvps"
	"github.com/dalemusser/bourbonclub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves club meetings, their pour lists, and member RSVPs.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	AuditLog    *auditlog.Logger
	Meetings    *meetingstore.Store
	RSVPs       *rsvpstore.Store
	Bourbons    *bourbonstore.Store
	Memberships *membershipstore.Store
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		AuditLog:    audit,
		Meetings:    meetingstore.New(db),
		RSVPs:       rsvpstore.New(db),
		Bourbons:    bourbonstore.New(db),
		Memberships: membershipstore.New(db),
	}
}
