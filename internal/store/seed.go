package store

import (
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/pkg/models"
)

// seedCandidatures is the default dataset for a fresh installation
func seedCandidatures(clk clock.Clock) []models.Candidature {
	now := clk.Now()
	return []models.Candidature{
		{
			ID:        "seed-1",
			Company:   "Acme Inc",
			Position:  "Backend Engineer",
			Location:  "Remote",
			Source:    "jobboard",
			Status:    models.StatusDraft,
			Priority:  2,
			CreatedAt: now,
		},
		{
			ID:        "seed-2",
			Company:   "Globex",
			Position:  "Platform Engineer",
			Location:  "Lyon",
			Source:    "linkedin",
			Status:    models.StatusSent,
			Priority:  1,
			CreatedAt: now.AddDate(0, 0, -8),
		},
		{
			ID:           "seed-3",
			Company:      "Initech",
			Position:     "SRE",
			Location:     "Paris",
			Source:       "referral",
			Status:       models.StatusDiscussing,
			Priority:     1,
			CreatedAt:    now.AddDate(0, 0, -15),
			ReminderDate: models.CalDateOf(now.AddDate(0, 0, 3)),
		},
	}
}
