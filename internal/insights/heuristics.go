package insights

import (
	"fmt"
	"time"

	"github.com/quentinv/jobpipe/pkg/models"
)

// Each heuristic yields at most one suggestion with fixed confidence
// and priority. Identity, kind, and timestamps are filled by the sweep.

type candidatureHeuristic struct {
	id   string
	eval func(c models.Candidature, now time.Time) (models.Suggestion, bool)
}

type datasetHeuristic struct {
	id   string
	eval func(snapshot []models.Candidature, now time.Time, weeklyGoal int) (models.Suggestion, bool)
}

var perCandidature = []candidatureHeuristic{
	{
		id: "follow_up",
		eval: func(c models.Candidature, now time.Time) (models.Suggestion, bool) {
			if c.Status != models.StatusSent {
				return models.Suggestion{}, false
			}
			days := int(now.Sub(c.CreatedAt).Hours() / 24)
			if days < 7 || days > 14 {
				return models.Suggestion{}, false
			}
			return models.Suggestion{
				Title:       fmt.Sprintf("Follow up with %s", c.Company),
				Detail:      fmt.Sprintf("Sent %d days ago with no update. A short follow-up keeps it warm.", days),
				Confidence:  80,
				Impact:      models.ImpactHigh,
				Priority:    8,
				Dismissible: true,
			}, true
		},
	},
	{
		id: "retrospective",
		eval: func(c models.Candidature, now time.Time) (models.Suggestion, bool) {
			if c.Status != models.StatusDeclined || c.Priority != 1 {
				return models.Suggestion{}, false
			}
			return models.Suggestion{
				Title:       fmt.Sprintf("Retrospective on %s", c.Company),
				Detail:      "A top-priority application was declined. Note what to change next time.",
				Confidence:  70,
				Impact:      models.ImpactMedium,
				Priority:    6,
				Dismissible: true,
			}, true
		},
	},
	{
		id: "interview_prep",
		eval: func(c models.Candidature, now time.Time) (models.Suggestion, bool) {
			if c.Status != models.StatusDiscussing {
				return models.Suggestion{}, false
			}
			return models.Suggestion{
				Title:       fmt.Sprintf("Prepare for %s", c.Company),
				Detail:      fmt.Sprintf("Discussions are open for the %s role. Block prep time.", c.Position),
				Confidence:  90,
				Impact:      models.ImpactHigh,
				Priority:    9,
				Dismissible: true,
			}, true
		},
	},
}

var dataset = []datasetHeuristic{
	{
		id: "weekly_volume",
		eval: func(snapshot []models.Candidature, now time.Time, weeklyGoal int) (models.Suggestion, bool) {
			if weeklyGoal <= 0 {
				return models.Suggestion{}, false
			}
			sent := 0
			weekAgo := now.AddDate(0, 0, -7)
			for _, c := range snapshot {
				if c.Status != models.StatusDraft && c.CreatedAt.After(weekAgo) {
					sent++
				}
			}
			if sent >= weeklyGoal {
				return models.Suggestion{}, false
			}
			return models.Suggestion{
				Title:       "Below weekly volume goal",
				Detail:      fmt.Sprintf("%d of %d applications sent this week.", sent, weeklyGoal),
				Confidence:  60,
				Impact:      models.ImpactMedium,
				Priority:    7,
				Dismissible: true,
			}, true
		},
	},
	{
		id: "source_diversity",
		eval: func(snapshot []models.Candidature, now time.Time, weeklyGoal int) (models.Suggestion, bool) {
			if len(snapshot) < 5 {
				return models.Suggestion{}, false
			}
			counts := map[string]int{}
			sourced := 0
			for _, c := range snapshot {
				if c.Source != "" {
					counts[c.Source]++
					sourced++
				}
			}
			// Fires while at most one candidature comes from outside the
			// dominant source.
			dominant := 0
			for _, n := range counts {
				if n > dominant {
					dominant = n
				}
			}
			if sourced == 0 || dominant < sourced-1 {
				return models.Suggestion{}, false
			}
			return models.Suggestion{
				Title:       "Single-source pipeline",
				Detail:      "Nearly all applications come from one source. Trying another channel spreads the risk.",
				Confidence:  50,
				Impact:      models.ImpactLow,
				Priority:    4,
				Dismissible: true,
			}, true
		},
	},
	{
		id: "refusal_ratio",
		eval: func(snapshot []models.Candidature, now time.Time, weeklyGoal int) (models.Suggestion, bool) {
			declined, decided := 0, 0
			for _, c := range snapshot {
				switch c.Status {
				case models.StatusDeclined:
					declined++
					decided++
				case models.StatusAccepted:
					decided++
				}
			}
			if decided < 5 || declined*2 < decided {
				return models.Suggestion{}, false
			}
			return models.Suggestion{
				Title:       "High refusal ratio",
				Detail:      fmt.Sprintf("%d of %d decided applications were declined. Revisit targeting or materials.", declined, decided),
				Confidence:  65,
				Impact:      models.ImpactMedium,
				Priority:    5,
				Dismissible: true,
			}, true
		},
	},
}
