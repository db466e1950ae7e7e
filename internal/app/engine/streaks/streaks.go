// Package streaks computes attendance streaks from a member's RSVPs.
package streaks

import (
	"math"
	"sort"
	"time"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrentStreak counts attended meetings from the front of mostRecentFirst
// until the first miss.
func CurrentStreak(mostRecentFirst []bool) int {
	n := 0
	for _, attended := range mostRecentFirst {
		if !attended {
			break
		}
		n++
	}
	return n
}

// LongestStreak returns the longest run of attended meetings in chronological.
func LongestStreak(chronological []bool) int {
	best, run := 0, 0
	for _, attended := range chronological {
		if !attended {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// Summary is a member's attendance record for one club.
type Summary struct {
	CurrentStreak        int `json:"currentStreak"`
	LongestStreak        int `json:"longestStreak"`
	TotalAttended        int `json:"totalAttended"`
	TotalMeetings        int `json:"totalMeetings"`
	AttendancePercentage int `json:"attendancePercentage"`
}

// History orders the meetings held on or before now chronologically and
// reports whether the member attended each. A meeting with no RSVP counts
// as missed.
func History(meetings []models.Meeting, rsvps []models.RSVP, now time.Time) []bool {
	status := make(map[primitive.ObjectID]models.RSVP, len(rsvps))
	for _, r := range rsvps {
		status[r.MeetingID] = r
	}

	past := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if !m.Date.After(now) {
			past = append(past, m)
		}
	}
	sort.SliceStable(past, func(i, j int) bool { return past[i].Date.Before(past[j].Date) })

	out := make([]bool, len(past))
	for i, m := range past {
		r, ok := status[m.ID]
		out[i] = ok && r.Attended()
	}
	return out
}

// Summarize builds the attendance summary for one member's RSVPs against
// a club's meetings.
func Summarize(meetings []models.Meeting, rsvps []models.RSVP, now time.Time) Summary {
	chron := History(meetings, rsvps, now)

	recent := make([]bool, len(chron))
	for i, a := range chron {
		recent[len(chron)-1-i] = a
	}

	s := Summary{
		CurrentStreak: CurrentStreak(recent),
		LongestStreak: LongestStreak(chron),
		TotalMeetings: len(chron),
	}
	for _, a := range chron {
		if a {
			s.TotalAttended++
		}
	}
	if s.TotalMeetings > 0 {
		s.AttendancePercentage = int(math.Round(float64(s.TotalAttended) / float64(s.TotalMeetings) * 100))
	}
	return s
}
