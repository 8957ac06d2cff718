package models

import "time"

// Status is the pipeline stage of a candidature
type Status string

const (
	StatusDraft      Status = "draft"
	StatusSent       Status = "sent"
	StatusPending    Status = "pending"
	StatusDiscussing Status = "discussing"
	StatusDeclined   Status = "declined"
	StatusAccepted   Status = "accepted"
)

// AllStatuses lists every valid status in pipeline order
var AllStatuses = []Status{
	StatusDraft, StatusSent, StatusPending, StatusDiscussing, StatusDeclined, StatusAccepted,
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Candidature represents a single tracked job application
type Candidature struct {
	ID           string    `json:"id"`
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	Location     string    `json:"location"`
	Source       string    `json:"source"` // linkedin, referral, jobboard, manual, etc.
	Notes        string    `json:"notes"`
	Status       Status    `json:"status"`
	Priority     int       `json:"priority"` // 1 = highest, 3 = lowest
	CreatedAt    time.Time `json:"created_at"`
	ReminderDate CalDate   `json:"reminder_date"` // calendar date only, zero when unset
}

// Trigger is what causes an automation rule to be evaluated
type Trigger string

const (
	TriggerStatusChange Trigger = "status_change"
	TriggerTimeBased    Trigger = "time_based"
)

// Operator compares a candidature field against a rule condition value
type Operator string

const (
	OpEquals    Operator = "equals"
	OpNotEquals Operator = "not_equals"
	OpContains  Operator = "contains"   // case-insensitive substring
	OpDaysSince Operator = "days_since" // days between a date field and now, >= value
)

// Field is the closed set of candidature fields a condition may reference
type Field string

const (
	FieldStatus   Field = "status"
	FieldCompany  Field = "company"
	FieldPosition Field = "position"
	FieldLocation Field = "location"
	FieldSource   Field = "source"
	FieldNotes    Field = "notes"
	FieldPriority Field = "priority"
	FieldCreated  Field = "created"
	FieldReminder Field = "reminder"
)

// Condition is one AND-term of a rule
type Condition struct {
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// ActionKind identifies one of the fixed rule actions
type ActionKind string

const (
	ActionNotify           ActionKind = "notify"
	ActionScheduleReminder ActionKind = "schedule_reminder"
	ActionSetStatus        ActionKind = "set_status"
)

// Action is one side effect executed when a rule fires.
// Only the fields relevant to its Kind are set.
type Action struct {
	Kind        ActionKind `json:"kind"`
	Title       string     `json:"title,omitempty"`
	Message     string     `json:"message,omitempty"`
	DelayDays   int        `json:"delay_days,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status,omitempty"`
}

// AutomationRule is a trigger + condition set + action set definition
type AutomationRule struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Enabled      bool        `json:"enabled"`
	Trigger      Trigger     `json:"trigger"`
	Conditions   []Condition `json:"conditions"` // AND-only
	Actions      []Action    `json:"actions"`    // executed in order
	Executions   int         `json:"executions"`
	LastExecuted time.Time   `json:"last_executed"`
}

// ImpactTier grades how much a suggestion matters
type ImpactTier string

const (
	ImpactHigh   ImpactTier = "high"
	ImpactMedium ImpactTier = "medium"
	ImpactLow    ImpactTier = "low"
)

// Suggestion is a derived, ranked, time-bounded recommendation
type Suggestion struct {
	ID            string     `json:"id"` // heuristic id + candidature id, stable across sweeps
	Kind          string     `json:"kind"`
	Title         string     `json:"title"`
	Detail        string     `json:"detail"`
	Confidence    int        `json:"confidence"` // 0-100
	Impact        ImpactTier `json:"impact"`
	CandidatureID string     `json:"candidature_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Priority      int        `json:"priority"` // display order, descending
	Dismissible   bool       `json:"dismissible"`
}

// ReminderOrigin distinguishes user-created reminders from rule-derived ones
type ReminderOrigin string

const (
	OriginManual  ReminderOrigin = "manual"
	OriginDerived ReminderOrigin = "derived"
)

// Reminder is a dated task, manual or derived from a candidature's workflow
type Reminder struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Date          CalDate        `json:"date"`
	Origin        ReminderOrigin `json:"origin"`
	CandidatureID string         `json:"candidature_id,omitempty"`
	Completed     bool           `json:"completed"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NotificationKind classifies a user-facing notification
type NotificationKind string

const (
	NotifReminder NotificationKind = "reminder"
	NotifInfo     NotificationKind = "info"
	NotifSuccess  NotificationKind = "success"
	NotifError    NotificationKind = "error"
)

// Notification is an append-only user-facing message; only Read mutates
type Notification struct {
	ID            string           `json:"id"`
	Kind          NotificationKind `json:"kind"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	CreatedAt     time.Time        `json:"created_at"`
	Read          bool             `json:"read"`
	Link          string           `json:"link,omitempty"`
	CandidatureID string           `json:"candidature_id,omitempty"`
}
