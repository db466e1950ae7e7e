package achievements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeCounter struct {
	values map[Metric]int
	calls  map[Metric]int
	err    error
}

func (f *fakeCounter) Count(_ context.Context, _ primitive.ObjectID, m Metric) (int, error) {
	if f.calls == nil {
		f.calls = make(map[Metric]int)
	}
	f.calls[m]++
	if f.err != nil {
		return 0, f.err
	}
	return f.values[m], nil
}

type fakeAwards struct {
	recs   map[string]models.UserAchievement
	awards int
}

func (f *fakeAwards) ListEarned(_ context.Context, userID primitive.ObjectID) ([]models.UserAchievement, error) {
	var out []models.UserAchievement
	for _, r := range f.recs {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAwards) Award(_ context.Context, userID primitive.ObjectID, key string, at time.Time) error {
	if f.recs == nil {
		f.recs = make(map[string]models.UserAchievement)
	}
	if _, ok := f.recs[key]; ok {
		return nil
	}
	f.awards++
	f.recs[key] = models.UserAchievement{UserID: userID, Key: key, EarnedAt: at}
	return nil
}

func TestRequiredMetrics_Distinct(t *testing.T) {
	got := RequiredMetrics(Catalog)
	want := []Metric{MetricReviews, MetricPollVotes, MetricAttendance, MetricSuggestions, MetricVotesReceived}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("metric %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCatalog_KeysUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Catalog {
		if seen[d.Key] {
			t.Errorf("duplicate key %q", d.Key)
		}
		seen[d.Key] = true
		if d.Threshold <= 0 {
			t.Errorf("%s: threshold must be positive", d.Key)
		}
	}
}

func TestReport(t *testing.T) {
	catalog := []Definition{
		{Key: "a", Metric: MetricReviews, Threshold: 10},
		{Key: "b", Metric: MetricReviews, Threshold: 2},
	}
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	got := Report(catalog, map[Metric]int{MetricReviews: 4}, map[string]time.Time{"b": at})

	if got[0].Progress != 4 || got[0].Percent != 40 || got[0].Earned {
		t.Errorf("a: got %+v", got[0])
	}
	if !got[1].Earned || got[1].EarnedAt == nil || !got[1].EarnedAt.Equal(at) {
		t.Errorf("b: expected earned at %v, got %+v", at, got[1])
	}
	if got[1].Percent != 100 {
		t.Errorf("b: percent should cap at 100, got %d", got[1].Percent)
	}
}

func TestTracker_CountsEachMetricOnce(t *testing.T) {
	counter := &fakeCounter{values: map[Metric]int{}}
	tr := NewTracker(counter, &fakeAwards{}, zap.NewNop())

	if _, err := tr.Report(context.Background(), primitive.NewObjectID()); err != nil {
		t.Fatalf("Report: %v", err)
	}
	for m, n := range counter.calls {
		if n != 1 {
			t.Errorf("%s counted %d times", m, n)
		}
	}
	if len(counter.calls) != len(RequiredMetrics(Catalog)) {
		t.Errorf("counted %d metrics, want %d", len(counter.calls), len(RequiredMetrics(Catalog)))
	}
}

func TestTracker_AwardsOnRead(t *testing.T) {
	counter := &fakeCounter{values: map[Metric]int{MetricReviews: 10, MetricPollVotes: 1}}
	awards := &fakeAwards{}
	tr := NewTracker(counter, awards, zap.NewNop())
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	tr.Now = func() time.Time { return fixed }
	user := primitive.NewObjectID()

	got, err := tr.Report(context.Background(), user)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	earned := make(map[string]bool)
	for _, p := range got {
		if p.Earned {
			earned[p.Key] = true
			if !p.EarnedAt.Equal(fixed) {
				t.Errorf("%s earned at %v, want %v", p.Key, p.EarnedAt, fixed)
			}
		}
	}
	for _, k := range []string{"first_pour", "seasoned_palate", "voice_heard"} {
		if !earned[k] {
			t.Errorf("expected %s earned", k)
		}
	}
	if earned["master_taster"] {
		t.Error("master_taster should not be earned at 10 reviews")
	}
	if awards.awards != 3 {
		t.Errorf("got %d awards, want 3", awards.awards)
	}

	// a second read awards nothing new
	if _, err := tr.Report(context.Background(), user); err != nil {
		t.Fatalf("second Report: %v", err)
	}
	if awards.awards != 3 {
		t.Errorf("second read awarded again: %d", awards.awards)
	}
}

func TestTracker_CounterErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	tr := NewTracker(&fakeCounter{err: boom}, &fakeAwards{}, zap.NewNop())
	if _, err := tr.Report(context.Background(), primitive.NewObjectID()); !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped boom", err)
	}
}
