// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	sets := []struct {
		coll   string
		models []mongo.IndexModel
	}{
		{"clubs", clubIndexes()},
		{"users", userIndexes()},
		{"club_memberships", membershipIndexes()},
		{"bourbons", bourbonIndexes()},
		{"reviews", reviewIndexes()},
		{"meetings", meetingIndexes()},
		{"meeting_bourbons", meetingBourbonIndexes()},
		{"rsvps", rsvpIndexes()},
		{"polls", pollIndexes()},
		{"poll_votes", pollVoteIndexes()},
		{"bourbon_suggestions", suggestionIndexes()},
		{"suggestion_votes", suggestionVoteIndexes()},
		{"user_achievements", achievementIndexes()},
	}

	var problems []string
	for _, s := range sets {
		if err := ensureIndexSet(ctx, db.Collection(s.coll), s.models); err != nil {
			problems = append(problems, s.coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name    string `bson:"name"`
	Key     bson.D `bson:"key"`
	Unique  *bool  `bson:"unique,omitempty"`
	Partial bson.D `bson:"partialFilterExpression,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// partialSig renders a partial filter for comparison; "" when absent.
func partialSig(filter any) string {
	if filter == nil {
		return ""
	}
	raw, err := bson.MarshalExtJSON(filter, true, false)
	if err != nil {
		return fmt.Sprintf("%v", filter)
	}
	return string(raw)
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

// desired captures the parts of an IndexModel we reconcile against.
type desired struct {
	name    string
	unique  *bool
	sig     string
	partial string
}

func describe(m mongo.IndexModel) desired {
	d := desired{sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		d.unique = m.Options.Unique
		d.partial = partialSig(m.Options.PartialFilterExpression)
	}
	return d
}

func (d desired) matches(ex existingIndex) bool {
	var exPartial string
	if len(ex.Partial) > 0 {
		exPartial = partialSig(ex.Partial)
	}
	return sameBoolPtr(d.unique, ex.Unique) && d.partial == exPartial
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// recreate drops an index and creates the desired one in its place.
func recreate(ctx context.Context, coll *mongo.Collection, dropName string, m mongo.IndexModel, d desired) error {
	if _, err := coll.Indexes().DropOne(ctx, dropName); err != nil {
		return fmt.Errorf("drop %s failed: %w", dropName, err)
	}
	return create(ctx, coll, m, d)
}

func create(ctx context.Context, coll *mongo.Collection, m mongo.IndexModel, d desired) error {
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		if isDuplicateKeyErr(err) && d.unique != nil && *d.unique {
			return fmt.Errorf("cannot create unique index (duplicates present on %s)", d.sig)
		}
		return err
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		d := describe(m)
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", d.name),
			zap.String("keys", d.sig),
			zap.Bool("unique", d.unique != nil && *d.unique))

		ex, ok := listExisting(ctx, coll)[d.sig]
		switch {
		case ok && d.matches(ex) && (d.name == "" || ex.Name == d.name):
			log.Debug("reusing existing index")
			continue

		case ok && d.matches(ex):
			log.Info("renaming index to align with desired name", zap.String("from", ex.Name))
			if err := recreate(ctx, coll, ex.Name, m, d); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): rename: %v", coll.Name(), d.name, err))
				continue
			}

		case ok:
			// Options mismatch (e.g., upgrading to unique or partial). Drop & recreate.
			if err := recreate(ctx, coll, ex.Name, m, d); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
				continue
			}

		default:
			err := create(ctx, coll, m, d)
			if err != nil && isOptionsConflictErr(err) {
				if ex, found := listExisting(ctx, coll)[d.sig]; found {
					err = recreate(ctx, coll, ex.Name, m, d)
				}
			}
			if err != nil {
				log.Warn("index ensure failed", zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
				continue
			}
		}

		log.Info("index ensured", zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func clubIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_clubs_nameci__id"),
		},
	}
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// Email is optional; only non-empty addresses must be unique.
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email").
				SetPartialFilterExpression(bson.D{{Key: "email", Value: bson.D{{Key: "$gt", Value: ""}}}}),
		},
		// Leaderboard name lookups batch by _id; this serves member lists.
		{
			Keys:    bson.D{{Key: "current_club_id", Value: 1}},
			Options: options.Index().SetName("idx_users_current_club"),
		},
	}
}

func membershipIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// Exactly one membership per (user, club); role is scalar.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "club_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cm_user_club"),
		},
		// Tenant self-heal picks the earliest membership.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_cm_user_created"),
		},
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_cm_club_role"),
		},
	}
}

func bourbonIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_bourbons_club_nameci__id"),
		},
	}
}

func reviewIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// One standalone review per (user, bourbon).
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "bourbon_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_reviews_user_bourbon_standalone").
				SetPartialFilterExpression(bson.D{{Key: "standalone", Value: true}}),
		},
		// One meeting-bound review per (user, meeting pour).
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "meeting_bourbon_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_reviews_user_meetingbourbon").
				SetPartialFilterExpression(bson.D{{Key: "meeting_bourbon_id", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
		// Club-wide engine reads (leaderboard, discovery, bourbon lists).
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "bourbon_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_reviews_club_bourbon__id"),
		},
		// Achievement progress counts reviews per user.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "club_id", Value: 1}},
			Options: options.Index().SetName("idx_reviews_user_club"),
		},
	}
}

func meetingIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_meetings_club_date"),
		},
	}
}

func meetingBourbonIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "meeting_id", Value: 1}, {Key: "bourbon_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_mb_meeting_bourbon"),
		},
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "bourbon_id", Value: 1}},
			Options: options.Index().SetName("idx_mb_club_bourbon"),
		},
	}
}

func rsvpIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// Last write wins: upserts target this key.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "meeting_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_rsvps_user_meeting"),
		},
		// Streaks and attendance counts per user within a club.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "club_id", Value: 1}, {Key: "meeting_date", Value: -1}},
			Options: options.Index().SetName("idx_rsvps_user_club_date"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_rsvps_user_status"),
		},
	}
}

func pollIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_polls_club_created"),
		},
	}
}

func pollVoteIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "poll_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_pv_poll_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_pv_user"),
		},
	}
}

func suggestionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_bs_club_created"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_bs_user"),
		},
	}
}

func suggestionVoteIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "suggestion_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_sv_suggestion_user"),
		},
		// Votes received per suggestion author.
		{
			Keys:    bson.D{{Key: "suggested_by", Value: 1}},
			Options: options.Index().SetName("idx_sv_suggested_by"),
		},
	}
}

func achievementIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// Earned at most once per user per key.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_ua_user_key"),
		},
	}
}
