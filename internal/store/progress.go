package store

import (
	"slices"
	"time"

	"github.com/abhisek/afrolingo/internal/session"
)

const dateLayout = "2006-01-02"

// HeartPolicy controls the heart cap and the timed refill.
type HeartPolicy struct {
	MaxHearts float64
	Refill    time.Duration
}

// DefaultHeartPolicy returns the policy used when none is configured.
func DefaultHeartPolicy() HeartPolicy {
	return HeartPolicy{MaxHearts: session.MaxHearts, Refill: 30 * time.Minute}
}

// Progress is a learner's standing in one language.
type Progress struct {
	UserID     string `json:"userId"`
	LanguageID string `json:"languageId"`
	XP         int    `json:"xp"`

	// Hearts is stored in halves; see session.RedemptionHeal.
	Hearts float64 `json:"hearts"`

	// HeartsResetAt is when hearts refill to the cap. Nil when full.
	HeartsResetAt *time.Time `json:"heartsResetAt,omitempty"`

	// Streak counts consecutive days with a finished lesson.
	Streak        int `json:"streak"`
	LongestStreak int `json:"longestStreak"`

	// LastActiveDate is the local calendar day of the last finished lesson,
	// formatted as 2006-01-02.
	LastActiveDate string `json:"lastActiveDate,omitempty"`

	CompletedLessons []string  `json:"completedLessons"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewProgress returns the starting progress of a learner.
func NewProgress(userID, languageID string, policy HeartPolicy) Progress {
	return Progress{
		UserID:           userID,
		LanguageID:       languageID,
		Hearts:           policy.MaxHearts,
		CompletedLessons: []string{},
	}
}

// Refill restores hearts to the cap once the reset time has passed.
// It reports whether anything changed.
func (p *Progress) Refill(now time.Time, policy HeartPolicy) bool {
	if p.HeartsResetAt == nil || now.Before(*p.HeartsResetAt) {
		return false
	}
	p.Hearts = policy.MaxHearts
	p.HeartsResetAt = nil
	return true
}

// Apply folds a finished session into p.
func (p *Progress) Apply(sum session.Summary, now time.Time, policy HeartPolicy) {
	p.Refill(now, policy)

	p.XP += sum.Report.XPEarned
	p.Hearts = min(max(p.Hearts-sum.Report.HeartsLost+sum.Report.HeartsGained, 0), policy.MaxHearts)
	if p.Hearts < policy.MaxHearts {
		if p.HeartsResetAt == nil {
			at := now.Add(policy.Refill)
			p.HeartsResetAt = &at
		}
	} else {
		p.HeartsResetAt = nil
	}

	if sum.Complete && !slices.Contains(p.CompletedLessons, sum.LessonID) {
		p.CompletedLessons = append(p.CompletedLessons, sum.LessonID)
	}

	if sum.Complete {
		p.touchStreak(now)
	}
	p.UpdatedAt = now
}

// touchStreak records activity on now's calendar day.
func (p *Progress) touchStreak(now time.Time) {
	today := now.Format(dateLayout)
	switch p.LastActiveDate {
	case today:
		return
	case now.AddDate(0, 0, -1).Format(dateLayout):
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActiveDate = today
	p.LongestStreak = max(p.LongestStreak, p.Streak)
}

// CurrentStreak returns the streak as of now. A streak whose last active day
// is older than yesterday has lapsed.
func (p Progress) CurrentStreak(now time.Time) int {
	switch p.LastActiveDate {
	case now.Format(dateLayout), now.AddDate(0, 0, -1).Format(dateLayout):
		return p.Streak
	}
	return 0
}

// NextStreakMilestone returns the next streak length worth celebrating.
func NextStreakMilestone(current int) int {
	for _, t := range []int{3, 7, 14, 30} {
		if t > current {
			return t
		}
	}
	// Beyond a month, celebrate every 30 days.
	return ((current / 30) + 1) * 30
}
