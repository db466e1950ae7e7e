// Package achievementprogress counts the per-user activity that drives
// achievements. Every count spans all of the user's clubs. Attendance only
// counts meetings that have already been held.
package achievementprogress

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/engine/achievements"
	pollstore "github.com/dalemusser/bourbonclub/internal/app/store/polls"
	reviewstore "github.com/dalemusser/bourbonclub/internal/app/store/reviews"
	rsvpstore "github.com/dalemusser/bourbonclub/internal/app/store/rsvps"
	suggestionstore "github.com/dalemusser/bourbonclub/internal/app/store/suggestions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counter implements achievements.MetricCounter over the engagement stores.
type Counter struct {
	reviews     *reviewstore.Store
	polls       *pollstore.Store
	rsvps       *rsvpstore.Store
	suggestions *suggestionstore.Store
	now         func() time.Time
}

func New(db *mongo.Database) *Counter {
	return &Counter{
		reviews:     reviewstore.New(db),
		polls:       pollstore.New(db),
		rsvps:       rsvpstore.New(db),
		suggestions: suggestionstore.New(db),
		now:         time.Now,
	}
}

var _ achievements.MetricCounter = (*Counter)(nil)

// Count returns the user's value for m.
func (c *Counter) Count(ctx context.Context, userID primitive.ObjectID, m achievements.Metric) (int, error) {
	var (
		n   int64
		err error
	)
	switch m {
	case achievements.MetricReviews:
		n, err = c.reviews.CountByUser(ctx, userID)
	case achievements.MetricPollVotes:
		n, err = c.polls.CountVotesByUser(ctx, userID)
	case achievements.MetricAttendance:
		n, err = c.rsvps.CountAttended(ctx, userID, c.now())
	case achievements.MetricSuggestions:
		n, err = c.suggestions.CountByUser(ctx, userID)
	case achievements.MetricVotesReceived:
		n, err = c.suggestions.CountVotesReceived(ctx, userID)
	default:
		return 0, fmt.Errorf("achievementprogress: unknown metric %q", m)
	}
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
