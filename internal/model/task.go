package model

import "time"

const (
	StatusPending = "Pending"
	StatusDone    = "Done"

	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	DefaultCategory = "General"
)

// Task represents a single item on the to-do list.
type Task struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status;default:Pending"`
	Category    string     `gorm:"column:category;default:General"`
	Priority    string     `gorm:"column:priority;default:Medium"`
	CreatedAt   *Timestamp `gorm:"column:created_at;type:text;autoCreateTime:false"`
	StartedAt   *Timestamp `gorm:"column:started_at;type:text"`
	CompletedAt *Timestamp `gorm:"column:completed_at;type:text"`
	Hidden      bool       `gorm:"column:hidden;type:integer;default:0"`
}

func (Task) TableName() string { return "tasks" }

// IsDone reports whether the task reached the Done status.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// Duration is the time between creation and completion. It is only defined
// for Done tasks carrying both timestamps.
func (t Task) Duration() (time.Duration, bool) {
	if !t.IsDone() || t.CreatedAt == nil || t.CompletedAt == nil {
		return 0, false
	}
	return t.CompletedAt.Sub(t.CreatedAt.Time), true
}

// ValidPriority reports whether p is one of the known priority labels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
