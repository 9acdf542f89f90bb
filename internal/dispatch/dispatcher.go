// Package dispatch implements the four scheduled notification functions:
// morning-words, morning-test, lunch-test and evening-review. Each function
// is a stateless single invocation driven by an at-least-once external
// trigger; idempotence comes from attendance markers upserted against the
// shared store, not from any in-process state.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/notify"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/google/uuid"
)

// Dispatch type names. They double as the attendance dedup marker for the
// invocation, applied uniformly to all four types.
const (
	TypeMorningWords  = models.AttendanceMorningWords
	TypeMorningTest   = models.AttendanceMorningTest
	TypeLunchTest     = models.AttendanceLunchTest
	TypeEveningReview = models.AttendanceEveningReview
)

// SubscriberStore is the slice of the subscriber repository dispatch needs
type SubscriberStore interface {
	GetActive() ([]models.Subscriber, error)
	AdvanceDay(email string, ceiling int) (int, bool, error)
}

// SettingsStore loads every settings row in one query
type SettingsStore interface {
	GetAll() (map[string]models.NotificationSettings, error)
}

// WordStore loads catalog words for a set of days in one query
type WordStore interface {
	GetByDays(days []int) (map[int][]models.Word, error)
}

// AttendanceStore provides the dedup guard and marker writes
type AttendanceStore interface {
	MarkedEmails(date, typ string) (map[string]bool, error)
	Upsert(rec models.AttendanceRecord) error
}

// ConfigStore exposes the global progression ceiling
type ConfigStore interface {
	TotalDays() (int, error)
}

// Sender fans one message out to a subscriber's channels
type Sender interface {
	Send(ctx context.Context, settings models.NotificationSettings, msg notify.Message) notify.SendResult
}

// ContentGenerator produces the optional AI sections. A nil generator means
// every message simply goes out without one.
type ContentGenerator interface {
	DailyPassage(ctx context.Context, words []models.Word) (string, error)
	ReviewSummary(ctx context.Context, day int, words []models.Word) (string, error)
}

// Config wires a Dispatcher
type Config struct {
	Subscribers  SubscriberStore
	Settings     SettingsStore
	Words        WordStore
	Attendance   AttendanceStore
	AppConfig    ConfigStore
	Sender       Sender
	Content      ContentGenerator
	Location     *time.Location // Organizational timezone, never server-local
	Now          func() time.Time
	DashboardURL string
}

// Dispatcher runs the four scheduled dispatch functions
type Dispatcher struct {
	subscribers  SubscriberStore
	settings     SettingsStore
	words        WordStore
	attendance   AttendanceStore
	appConfig    ConfigStore
	sender       Sender
	content      ContentGenerator
	loc          *time.Location
	now          func() time.Time
	dashboardURL string
}

// New creates a dispatcher
func New(cfg Config) *Dispatcher {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		subscribers:  cfg.Subscribers,
		settings:     cfg.Settings,
		words:        cfg.Words,
		attendance:   cfg.Attendance,
		appConfig:    cfg.AppConfig,
		sender:       cfg.Sender,
		content:      cfg.Content,
		loc:          loc,
		now:          now,
		dashboardURL: cfg.DashboardURL,
	}
}

// Subscriber result statuses
const (
	StatusSent               = "sent"
	StatusSkippedNoWords     = "skipped_no_words"
	StatusSkippedAlreadySent = "skipped_already_sent"
)

// SubscriberResult is one subscriber's outcome inside a batch
type SubscriberResult struct {
	Email     string            `json:"email"`
	Day       int               `json:"day"`
	Status    string            `json:"status"`
	Channels  notify.SendResult `json:"channels,omitempty"`
	Advanced  bool              `json:"advanced,omitempty"`
	Graduated bool              `json:"graduated,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Summary is the JSON batch result returned to the trigger. Partial
// failures live inside Results; only pre-loop failures become errors.
type Summary struct {
	InvocationID       string             `json:"invocation_id"`
	Type               string             `json:"type"`
	Date               string             `json:"date"`
	Sent               int                `json:"sent"`
	SkippedNoWords     int                `json:"skippedNoWords"`
	SkippedAlreadySent int                `json:"skippedAlreadySent"`
	Results            []SubscriberResult `json:"results"`
}

// batch carries the state loaded once per invocation
type batch struct {
	date     string
	eligible []models.Subscriber
	settings map[string]models.NotificationSettings
	groups   map[int][]models.Subscriber
	words    map[int][]models.Word
	summary  *Summary
}

// prepare runs every pre-loop stage: subscriber and settings load, dedup
// prefetch, eligibility filter, day grouping, and the single catalog query.
// Any failure here is batch-fatal; nothing has been sent yet.
func (d *Dispatcher) prepare(dispatchType, slot string) (*batch, error) {
	now := d.now().In(d.loc)
	date := now.Format("2006-01-02")
	weekday := int(now.Weekday())
	nowHHMM := now.Format("15:04")

	summary := &Summary{
		InvocationID: uuid.NewString(),
		Type:         dispatchType,
		Date:         date,
	}

	subs, err := d.subscribers.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers: %v", err)
	}

	allSettings, err := d.settings.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %v", err)
	}

	marked, err := d.attendance.MarkedEmails(date, dispatchType)
	if err != nil {
		return nil, fmt.Errorf("failed to load dedup markers: %v", err)
	}

	var eligible []models.Subscriber
	for _, sub := range subs {
		settings, ok := allSettings[sub.Email]
		if !ok {
			settings = models.DefaultSettings(sub.Email)
			allSettings[sub.Email] = settings
		}
		if !IsEligible(sub, settings, weekday, nowHHMM, slot) {
			continue
		}
		if marked[sub.Email] {
			summary.SkippedAlreadySent++
			summary.Results = append(summary.Results, SubscriberResult{
				Email:  sub.Email,
				Day:    sub.Day(),
				Status: StatusSkippedAlreadySent,
			})
			continue
		}
		eligible = append(eligible, sub)
	}

	groups := GroupByDay(eligible)
	words, err := d.words.GetByDays(GroupDays(groups))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog words: %v", err)
	}

	return &batch{
		date:     date,
		eligible: eligible,
		settings: allSettings,
		groups:   groups,
		words:    words,
		summary:  summary,
	}, nil
}

// skipNoWords records a whole day group as skipped. An empty day must never
// produce an empty message.
func (b *batch) skipNoWords(day int) {
	for _, sub := range b.groups[day] {
		b.summary.SkippedNoWords++
		b.summary.Results = append(b.summary.Results, SubscriberResult{
			Email:  sub.Email,
			Day:    day,
			Status: StatusSkippedNoWords,
		})
	}
}

// mark upserts the dedup attendance marker. It is written after every
// attempted send, even a fully failed one: at-most-once-per-day is traded
// against best-effort delivery to prevent notification storms on retries.
func (d *Dispatcher) mark(email, date, dispatchType string, day int) {
	rec := models.AttendanceRecord{
		Email:     email,
		Date:      date,
		Type:      dispatchType,
		Completed: true,
		Day:       &day,
	}
	if err := d.attendance.Upsert(rec); err != nil {
		log.Printf("dispatch: failed to mark %s for %s: %v", dispatchType, email, err)
	}
}
