// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"

	"github.com/dalemusser/bourbonclub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category of events.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Member controls logging for member events such as switching clubs.
	Member string
	// Admin controls logging for catalog and moderation events.
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and structured
// logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ClubID != nil {
		fields = append(fields, zap.String("club_id", event.ClubID.Hex()))
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so handlers built in tests may omit it.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryMember:
		setting = l.config.Member
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if setting == All || setting == DB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Member Events ---

// ClubSwitched logs a member moving their session to another club.
func (l *Logger) ClubSwitched(ctx context.Context, r *http.Request, userID, clubID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMember,
		EventType: audit.EventClubSwitched,
		ClubID:    &clubID,
		UserID:    &userID,
		ActorID:   &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// --- Admin Events ---

func (l *Logger) admin(ctx context.Context, r *http.Request, eventType string, actorID, clubID primitive.ObjectID, userID *primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ClubID:    &clubID,
		UserID:    userID,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// BourbonAdded logs a bottle added to the club catalog.
func (l *Logger) BourbonAdded(ctx context.Context, r *http.Request, actorID, clubID, bourbonID primitive.ObjectID, name string) {
	l.admin(ctx, r, audit.EventBourbonAdded, actorID, clubID, nil, map[string]string{
		"bourbon_id": bourbonID.Hex(),
		"name":       name,
	})
}

// MeetingCreated logs a new club meeting.
func (l *Logger) MeetingCreated(ctx context.Context, r *http.Request, actorID, clubID, meetingID primitive.ObjectID, title string) {
	l.admin(ctx, r, audit.EventMeetingCreated, actorID, clubID, nil, map[string]string{
		"meeting_id": meetingID.Hex(),
		"title":      title,
	})
}

// PourAdded logs a bourbon added to a meeting's pour list.
func (l *Logger) PourAdded(ctx context.Context, r *http.Request, actorID, clubID, meetingID, bourbonID primitive.ObjectID) {
	l.admin(ctx, r, audit.EventPourAdded, actorID, clubID, nil, map[string]string{
		"meeting_id": meetingID.Hex(),
		"bourbon_id": bourbonID.Hex(),
	})
}

// PollCreated logs a new club poll.
func (l *Logger) PollCreated(ctx context.Context, r *http.Request, actorID, clubID, pollID primitive.ObjectID) {
	l.admin(ctx, r, audit.EventPollCreated, actorID, clubID, nil, map[string]string{
		"poll_id": pollID.Hex(),
	})
}

// ReviewRemoved logs a club admin deleting another member's review.
func (l *Logger) ReviewRemoved(ctx context.Context, r *http.Request, actorID, clubID, authorID, reviewID primitive.ObjectID) {
	l.admin(ctx, r, audit.EventReviewRemoved, actorID, clubID, &authorID, map[string]string{
		"review_id": reviewID.Hex(),
	})
}
