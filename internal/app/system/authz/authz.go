// internal/app/system/authz/authz.go
//
// Package authz answers club-role questions for the current request. Roles
// live on memberships, so every check is relative to the resolved club.
package authz

import (
	"context"
	"net/http"

	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/tenant"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Memberships looks up one user's membership in one club.
type Memberships interface {
	Get(ctx context.Context, userID, clubID primitive.ObjectID) (models.Membership, bool, error)
}

// ClubRole returns the user's role in the scoped club, or "" when the user
// is not a member.
func ClubRole(ctx context.Context, ms Memberships, s tenant.Scope) (string, error) {
	m, found, err := ms.Get(ctx, s.UserID, s.ClubID)
	if err != nil || !found {
		return "", err
	}
	return m.Role, nil
}

// IsClubAdmin reports whether the user administers the scoped club.
func IsClubAdmin(ctx context.Context, ms Memberships, s tenant.Scope) (bool, error) {
	role, err := ClubRole(ctx, ms, s)
	return role == models.RoleAdmin, err
}

// RequireClubAdmin returns middleware that lets only admins of the resolved
// club through. It must run after the tenant middleware.
func RequireClubAdmin(ms Memberships, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := tenant.FromRequest(r)
			if !ok {
				jsonutil.Error(w, http.StatusForbidden, "no_club", "Join a club to continue.")
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()

			admin, err := IsClubAdmin(ctx, ms, s)
			if err != nil {
				logger.Error("club admin check failed",
					zap.Error(err),
					zap.String("user_id", s.UserID.Hex()),
					zap.String("club_id", s.ClubID.Hex()))
				jsonutil.Error(w, http.StatusInternalServerError, "internal", "Something went wrong. Please try again.")
				return
			}
			if !admin {
				jsonutil.Error(w, http.StatusForbidden, "forbidden", "Club admins only.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
