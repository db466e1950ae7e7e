// Package achievements reports a member's progress through the achievement
// catalog and awards achievements whose thresholds have been reached.
package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/system/enginemetrics"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Progress is one achievement as shown to its member.
type Progress struct {
	Definition
	Progress int        `json:"progress"`
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
	Percent  int        `json:"percent"`
}

// Report pairs every catalog entry with the member's metric value and earned
// record. Percent is capped at 100.
func Report(catalog []Definition, metrics map[Metric]int, earned map[string]time.Time) []Progress {
	out := make([]Progress, 0, len(catalog))
	for _, d := range catalog {
		p := Progress{Definition: d, Progress: metrics[d.Metric]}
		if at, ok := earned[d.Key]; ok {
			p.Earned = true
			p.EarnedAt = &at
		}
		if d.Threshold > 0 {
			p.Percent = min(100, p.Progress*100/d.Threshold)
		}
		out = append(out, p)
	}
	return out
}

// Due returns the definitions that have reached their threshold but have no
// earned record.
func Due(catalog []Definition, metrics map[Metric]int, earned map[string]time.Time) []Definition {
	var out []Definition
	for _, d := range catalog {
		if _, ok := earned[d.Key]; ok {
			continue
		}
		if metrics[d.Metric] >= d.Threshold {
			out = append(out, d)
		}
	}
	return out
}

// MetricCounter computes one metric for one user.
type MetricCounter interface {
	Count(ctx context.Context, userID primitive.ObjectID, m Metric) (int, error)
}

// AwardStore persists earned records. Award must treat an existing record
// for (userID, key) as success.
type AwardStore interface {
	ListEarned(ctx context.Context, userID primitive.ObjectID) ([]models.UserAchievement, error)
	Award(ctx context.Context, userID primitive.ObjectID, key string, at time.Time) error
}

// Tracker computes progress and reconciles earned records on read.
type Tracker struct {
	Counter MetricCounter
	Awards  AwardStore
	Catalog []Definition
	Log     *zap.Logger
	Now     func() time.Time
}

// NewTracker returns a Tracker over the default catalog.
func NewTracker(counter MetricCounter, awards AwardStore, logger *zap.Logger) *Tracker {
	return &Tracker{
		Counter: counter,
		Awards:  awards,
		Catalog: Catalog,
		Log:     logger,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// Metrics computes every metric the catalog needs, each exactly once.
func (t *Tracker) Metrics(ctx context.Context, userID primitive.ObjectID) (map[Metric]int, error) {
	out := make(map[Metric]int)
	for _, m := range RequiredMetrics(t.Catalog) {
		n, err := t.Counter.Count(ctx, userID, m)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", m, err)
		}
		out[m] = n
	}
	return out, nil
}

func (t *Tracker) earned(ctx context.Context, userID primitive.ObjectID) (map[string]time.Time, error) {
	recs, err := t.Awards.ListEarned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list earned: %w", err)
	}
	out := make(map[string]time.Time, len(recs))
	for _, r := range recs {
		out[r.Key] = r.EarnedAt
	}
	return out, nil
}

// Report returns the member's progress, first awarding anything due.
//
// Concurrent readers may both try to award the same key; the store keeps the
// first record and the re-read picks it up.
func (t *Tracker) Report(ctx context.Context, userID primitive.ObjectID) ([]Progress, error) {
	metrics, err := t.Metrics(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned, err := t.earned(ctx, userID)
	if err != nil {
		return nil, err
	}

	due := Due(t.Catalog, metrics, earned)
	if len(due) > 0 {
		now := t.Now()
		for _, d := range due {
			if err := t.Awards.Award(ctx, userID, d.Key, now); err != nil {
				return nil, fmt.Errorf("award %s: %w", d.Key, err)
			}
			enginemetrics.RecordAward(d.Key)
			t.Log.Info("achievement awarded",
				zap.String("user_id", userID.Hex()),
				zap.String("key", d.Key),
				zap.Int("progress", metrics[d.Metric]))
		}
		if earned, err = t.earned(ctx, userID); err != nil {
			return nil, err
		}
	}

	return Report(t.Catalog, metrics, earned), nil
}
