// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	achievementsfeature "github.com/dalemusser/bourbonclub/internal/app/features/achievements"
	attendancefeature "github.com/dalemusser/bourbonclub/internal/app/features/attendance"
	auditlogfeature "github.com/dalemusser/bourbonclub/internal/app/features/auditlog"
	bourbonsfeature "github.com/dalemusser/bourbonclub/internal/app/features/bourbons"
	clubsfeature "github.com/dalemusser/bourbonclub/internal/app/features/clubs"
	dashboardfeature "github.com/dalemusser/bourbonclub/internal/app/features/dashboard"
	discoverfeature "github.com/dalemusser/bourbonclub/internal/app/features/discover"
	healthfeature "github.com/dalemusser/bourbonclub/internal/app/features/health"
	leaderboardfeature "github.com/dalemusser/bourbonclub/internal/app/features/leaderboard"
	meetingsfeature "github.com/dalemusser/bourbonclub/internal/app/features/meetings"
	metricsfeature "github.com/dalemusser/bourbonclub/internal/app/features/metrics"
	pollsfeature "github.com/dalemusser/bourbonclub/internal/app/features/polls"
	reviewsfeature "github.com/dalemusser/bourbonclub/internal/app/features/reviews"
	suggestionsfeature "github.com/dalemusser/bourbonclub/internal/app/features/suggestions"
	"github.com/dalemusser/bourbonclub/internal/app/store/audit"
	membershipstore "github.com/dalemusser/bourbonclub/internal/app/store/memberships"
	userstore "github.com/dalemusser/bourbonclub/internal/app/store/users"
	"github.com/dalemusser/bourbonclub/internal/app/system/auditlog"
	"github.com/dalemusser/bourbonclub/internal/app/system/auth"
	"github.com/dalemusser/bourbonclub/internal/app/system/ratelimit"
	"github.com/dalemusser/bourbonclub/internal/app/system/requestid"
	"github.com/dalemusser/bourbonclub/internal/app/system/tenant"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Middleware order matters:
//  1. request id + access log
//  2. session user (never rejects)
//  3. sign-in required, for everything but /health and /metrics
//  4. per-member write throttling
//  5. tenant resolution, for everything but /clubs, which must work before
//     a club is chosen
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Member: appCfg.AuditLogMember,
		Admin:  appCfg.AuditLogAdmin,
	})
	resolver := tenant.NewResolver(userstore.New(db), membershipstore.New(db), logger)

	r := chi.NewRouter()
	r.Use(requestid.Middleware(logger))
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if appCfg.MetricsEnabled {
		r.Mount("/metrics", metricsfeature.Routes(nil))
	}

	r.Group(func(sr chi.Router) {
		sr.Use(sessionMgr.RequireSignedIn)
		if appCfg.WriteRateLimit > 0 {
			sr.Use(ratelimit.Writes(ratelimit.New(appCfg.WriteRateLimit, time.Minute), logger))
		}

		// Club selection runs without a resolved club.
		clubsHandler := clubsfeature.NewHandler(db, sessionMgr, auditLog, logger)
		sr.Mount("/clubs", clubsfeature.Routes(clubsHandler))

		sr.Group(func(cr chi.Router) {
			cr.Use(tenant.Middleware(resolver, logger))

			cr.Mount("/dashboard", dashboardfeature.Routes(dashboardfeature.NewHandler(db, logger)))

			// Catalog and reviews
			cr.Mount("/bourbons", bourbonsfeature.Routes(bourbonsfeature.NewHandler(db, auditLog, logger)))
			cr.Mount("/reviews", reviewsfeature.Routes(reviewsfeature.NewHandler(db, auditLog, logger)))

			// Rating engine views
			cr.Mount("/leaderboard", leaderboardfeature.Routes(leaderboardfeature.NewHandler(db, logger)))
			cr.Mount("/discover", discoverfeature.Routes(discoverfeature.NewHandler(db, logger)))
			cr.Mount("/achievements", achievementsfeature.Routes(achievementsfeature.NewHandler(db, logger)))
			cr.Mount("/attendance", attendancefeature.Routes(attendancefeature.NewHandler(db, logger)))

			// Meetings and engagement
			cr.Mount("/meetings", meetingsfeature.Routes(meetingsfeature.NewHandler(db, auditLog, logger)))
			cr.Mount("/polls", pollsfeature.Routes(pollsfeature.NewHandler(db, auditLog, logger)))
			cr.Mount("/suggestions", suggestionsfeature.Routes(suggestionsfeature.NewHandler(db, logger)))

			// Club admin
			cr.Mount("/audit", auditlogfeature.Routes(auditlogfeature.NewHandler(db, logger)))
		})
	})

	return r, nil
}
