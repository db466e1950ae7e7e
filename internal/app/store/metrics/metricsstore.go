package metricsstore

import (
	"context"
	"errors"

	"github.com/dalemusser/bourbonclub/internal/app/system/tenant"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUnscoped is returned when the context carries no club.
var ErrUnscoped = errors.New("metricsstore: context has no club scope")

// Counts is the set of club totals shown on the dashboard.
type Counts struct {
	Members     int64 `json:"members"`
	Bourbons    int64 `json:"bourbons"`
	Reviews     int64 `json:"reviews"`
	Meetings    int64 `json:"meetings"`
	Polls       int64 `json:"polls"`
	Suggestions int64 `json:"suggestions"`
}

// FetchClubCounts returns the totals for the club in ctx.
// Intentionally tolerant: on error it returns 0 for that counter.
// It refuses to count across clubs when ctx carries no Scope.
func FetchClubCounts(ctx context.Context, db *mongo.Database) (Counts, error) {
	var out Counts

	count := func(coll string, dst *int64) bool {
		filter := bson.M{}
		if !tenant.FilterCtx(ctx, filter) {
			return false
		}
		if n, err := db.Collection(coll).CountDocuments(ctx, filter); err == nil {
			*dst = n
		}
		return true
	}

	if !count("club_memberships", &out.Members) {
		return Counts{}, ErrUnscoped
	}
	count("bourbons", &out.Bourbons)
	count("reviews", &out.Reviews)
	count("meetings", &out.Meetings)
	count("polls", &out.Polls)
	count("bourbon_suggestions", &out.Suggestions)

	return out, nil
}
