// internal/app/features/bourbons/handler.go
package bourbons

import (
	bourbonstore "github.com/dalemusser/bourbonclub/internal/app/store/bourbons"
	reviewstore "github.com/dalemusser/bourbonclub/internal/app/store/reviews"
	"github.com/dalemusser/bourbonclub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves a club's bourbon catalog, with rating annotations and the
// side-by-side comparison.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger
	Bourbons *bourbonstore.Store
	Reviews  *reviewstore.Store
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		AuditLog: audit,
		Bourbons: bourbonstore.New(db),
		Reviews:  reviewstore.New(db),
	}
}
