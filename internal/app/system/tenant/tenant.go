// Package tenant resolves the club a request operates in and carries it
// through the request context.
//
// Every engine entry point receives its club through Scope rather than
// reading it from ambient state.
package tenant

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/bourbonclub/internal/app/system/auth"
	"github.com/dalemusser/bourbonclub/internal/app/system/enginemetrics"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ctxKey string

const scopeKey ctxKey = "tenantScope"

// Scope is the signed-in user and the club they are working in.
type Scope struct {
	UserID primitive.ObjectID
	ClubID primitive.ObjectID
}

// Users reads and repairs a user's persisted current club.
type Users interface {
	CurrentClubID(ctx context.Context, userID primitive.ObjectID) (*primitive.ObjectID, error)
	SetCurrentClubID(ctx context.Context, userID, clubID primitive.ObjectID) error
}

// Memberships finds any club the user belongs to.
type Memberships interface {
	FirstForUser(ctx context.Context, userID primitive.ObjectID) (models.Membership, bool, error)
}

// Resolver decides which club a request belongs to.
type Resolver struct {
	Users       Users
	Memberships Memberships
	Log         *zap.Logger
}

// NewResolver builds a Resolver.
func NewResolver(users Users, memberships Memberships, logger *zap.Logger) *Resolver {
	return &Resolver{Users: users, Memberships: memberships, Log: logger}
}

// Resolve returns the club for userID.
//
// Order of precedence:
//  1. sessionClubID, when set. Storage is not touched.
//  2. the user's persisted current club.
//  3. the user's first membership, which is then persisted as the current
//     club so later requests stop at step 2.
//
// ok is false only when the user belongs to no club. Read errors are
// returned unchanged; a failed write in step 3 is wrapped with %w.
func (res *Resolver) Resolve(ctx context.Context, userID primitive.ObjectID, sessionClubID *primitive.ObjectID) (primitive.ObjectID, bool, error) {
	if sessionClubID != nil {
		enginemetrics.RecordTenantResolution(enginemetrics.SourceSession)
		return *sessionClubID, true, nil
	}

	stored, err := res.Users.CurrentClubID(ctx, userID)
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	if stored != nil {
		enginemetrics.RecordTenantResolution(enginemetrics.SourceStored)
		return *stored, true, nil
	}

	m, found, err := res.Memberships.FirstForUser(ctx, userID)
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	if !found {
		enginemetrics.RecordTenantResolution(enginemetrics.SourceNone)
		res.Log.Debug("user has no club membership", zap.String("user_id", userID.Hex()))
		return primitive.NilObjectID, false, nil
	}

	// Concurrent heals may pick different memberships; any of them is valid.
	if err := res.Users.SetCurrentClubID(ctx, userID, m.ClubID); err != nil {
		return primitive.NilObjectID, false, fmt.Errorf("persist current club: %w", err)
	}
	enginemetrics.RecordTenantResolution(enginemetrics.SourceHealed)
	res.Log.Info("healed missing current club",
		zap.String("user_id", userID.Hex()),
		zap.String("club_id", m.ClubID.Hex()))
	return m.ClubID, true, nil
}

// Middleware resolves the club for the signed-in user and stores the Scope
// in the request context. It must run after the session middleware.
//
//   - no signed-in user: 401
//   - no club membership: 403
//   - storage failure: 500
func Middleware(res *Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.CurrentUser(r)
			if !ok {
				jsonutil.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			clubID, ok, err := res.Resolve(ctx, u.ID, u.ClubID)
			cancel()
			if err != nil {
				logger.Error("tenant resolution failed",
					zap.String("user_id", u.ID.Hex()),
					zap.Error(err))
				jsonutil.Error(w, http.StatusInternalServerError, "internal", "could not resolve club")
				return
			}
			if !ok {
				jsonutil.Error(w, http.StatusForbidden, "no_club", "join a club first")
				return
			}

			next.ServeHTTP(w, WithScope(r, Scope{UserID: u.ID, ClubID: clubID}))
		})
	}
}

// WithScope returns r carrying s.
func WithScope(r *http.Request, s Scope) *http.Request {
	return r.WithContext(NewContext(r.Context(), s))
}

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey, s)
}

// FromContext returns the Scope in ctx and whether one was set.
func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey).(Scope)
	return s, ok
}

// FromRequest returns the Scope for r and whether one was set.
func FromRequest(r *http.Request) (Scope, bool) {
	return FromContext(r.Context())
}

// FilterCtx adds club_id to filter when ctx carries a Scope. It reports
// whether the filter was scoped so callers can refuse unscoped queries.
//
//	filter := bson.M{"bourbon_id": id}
//	if !tenant.FilterCtx(ctx, filter) { ... }
func FilterCtx(ctx context.Context, filter map[string]interface{}) bool {
	s, ok := FromContext(ctx)
	if !ok {
		return false
	}
	filter["club_id"] = s.ClubID
	return true
}

