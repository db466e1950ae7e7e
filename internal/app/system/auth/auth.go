package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	userIDKey   = "user_id"
	userNameKey = "user_name"
	clubIDKey   = "club_id"
)

// ErrNoSession is returned when a session write is attempted for a request
// with no signed-in user.
var ErrNoSession = errors.New("no signed-in user")

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we read from the session cookie & inject into r.Context().
// ClubID is the club the session was last switched to; nil when the session
// carries none. It may be stale.
type SessionUser struct {
	ID     primitive.ObjectID
	Name   string
	ClubID *primitive.ObjectID
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	return FromContext(r.Context())
}

// FromContext is CurrentUser for code that only holds a context.
func FromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects u as the current user. Intended for handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager reads and writes the signed session cookie.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true), cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	store.MaxAge(opts.MaxAge)

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, logger: logger}, nil
}

// LoadSessionUser injects the user into context if the cookie names one.
// A cookie that fails to decode (tampered, expired, or signed with a rotated
// key) is treated as signed out.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				sm.logger.Debug("discarding undecodable session cookie", zap.Error(err))
			} else {
				sm.logger.Warn("session read failed", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if u, ok := userFromSession(sess); ok {
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects requests with no user in context with 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			jsonutil.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn writes a session for u. Sign-in itself is owned by the login
// service that shares this cookie; this is used by development tooling and
// tests.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[userIDKey] = u.ID.Hex()
	sess.Values[userNameKey] = u.Name
	if u.ClubID != nil {
		sess.Values[clubIDKey] = u.ClubID.Hex()
	} else {
		delete(sess.Values, clubIDKey)
	}
	return sess.Save(r, w)
}

// SetClub records clubID as the session's current club.
func (sm *SessionManager) SetClub(w http.ResponseWriter, r *http.Request, clubID primitive.ObjectID) error {
	sess, _ := sm.store.Get(r, sm.name)
	if _, ok := sess.Values[userIDKey].(string); !ok {
		return ErrNoSession
	}
	sess.Values[clubIDKey] = clubID.Hex()
	return sess.Save(r, w)
}

// helpers

func userFromSession(s *sessions.Session) (*SessionUser, bool) {
	uid, err := primitive.ObjectIDFromHex(getString(s, userIDKey))
	if err != nil {
		return nil, false
	}
	u := &SessionUser{ID: uid, Name: getString(s, userNameKey)}
	if cid, err := primitive.ObjectIDFromHex(getString(s, clubIDKey)); err == nil {
		u.ClubID = &cid
	}
	return u, true
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
