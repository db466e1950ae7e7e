package achievements

// Metric names a per-user progress counter.
type Metric string

const (
	MetricReviews       Metric = "reviews"
	MetricPollVotes     Metric = "poll_votes"
	MetricAttendance    Metric = "attendance"
	MetricSuggestions   Metric = "suggestions"
	MetricVotesReceived Metric = "votes_received"
)

// Categories group achievements for display.
const (
	CategoryTasting    = "tasting"
	CategoryCommunity  = "community"
	CategoryAttendance = "attendance"
	CategoryCuration   = "curation"
)

// Definition is one catalog entry.
type Definition struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon,omitempty"`
	Metric      Metric `json:"metric"`
	Threshold   int    `json:"threshold"`
}

// Catalog is the fixed set of achievements, in display order.
var Catalog = []Definition{
	{Key: "first_pour", Name: "First Pour", Description: "Write your first review", Category: CategoryTasting, Icon: "glass", Metric: MetricReviews, Threshold: 1},
	{Key: "seasoned_palate", Name: "Seasoned Palate", Description: "Write 10 reviews", Category: CategoryTasting, Icon: "nose", Metric: MetricReviews, Threshold: 10},
	{Key: "master_taster", Name: "Master Taster", Description: "Write 25 reviews", Category: CategoryTasting, Icon: "medal", Metric: MetricReviews, Threshold: 25},
	{Key: "bourbon_scholar", Name: "Bourbon Scholar", Description: "Write 50 reviews", Category: CategoryTasting, Icon: "book", Metric: MetricReviews, Threshold: 50},

	{Key: "voice_heard", Name: "Voice Heard", Description: "Vote in a club poll", Category: CategoryCommunity, Icon: "ballot", Metric: MetricPollVotes, Threshold: 1},
	{Key: "civic_duty", Name: "Civic Duty", Description: "Vote in 10 club polls", Category: CategoryCommunity, Icon: "gavel", Metric: MetricPollVotes, Threshold: 10},

	{Key: "regular", Name: "Regular", Description: "Attend 5 meetings", Category: CategoryAttendance, Icon: "chair", Metric: MetricAttendance, Threshold: 5},
	{Key: "club_stalwart", Name: "Club Stalwart", Description: "Attend 10 meetings", Category: CategoryAttendance, Icon: "barrel", Metric: MetricAttendance, Threshold: 10},
	{Key: "iron_liver", Name: "Iron Liver", Description: "Attend 25 meetings", Category: CategoryAttendance, Icon: "trophy", Metric: MetricAttendance, Threshold: 25},

	{Key: "scout", Name: "Scout", Description: "Suggest a bourbon for the club", Category: CategoryCuration, Icon: "compass", Metric: MetricSuggestions, Threshold: 1},
	{Key: "trendsetter", Name: "Trendsetter", Description: "Suggest 5 bourbons", Category: CategoryCuration, Icon: "map", Metric: MetricSuggestions, Threshold: 5},
	{Key: "crowd_pleaser", Name: "Crowd Pleaser", Description: "Receive 10 votes on your suggestions", Category: CategoryCuration, Icon: "thumbs-up", Metric: MetricVotesReceived, Threshold: 10},
	{Key: "tastemaker", Name: "Tastemaker", Description: "Receive 25 votes on your suggestions", Category: CategoryCuration, Icon: "crown", Metric: MetricVotesReceived, Threshold: 25},
}

// RequiredMetrics lists each metric the catalog uses once, in order of
// first use.
func RequiredMetrics(catalog []Definition) []Metric {
	seen := make(map[Metric]bool)
	var out []Metric
	for _, d := range catalog {
		if seen[d.Metric] {
			continue
		}
		seen[d.Metric] = true
		out = append(out, d.Metric)
	}
	return out
}
