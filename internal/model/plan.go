package model

const (
	TimeFrameWeek  = "Week"
	TimeFrameMonth = "Month"

	PlanStatusActive = "Active"
)

// Plan is a goal entry scoped to a week or a month.
type Plan struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Heading     string     `gorm:"column:heading;not null"`
	Description string     `gorm:"column:description"`
	FocusArea   string     `gorm:"column:focus_area;default:General"`
	Priority    string     `gorm:"column:priority;default:Medium"`
	TimeFrame   string     `gorm:"column:time_frame;not null"`
	CreatedAt   *Timestamp `gorm:"column:created_at;type:text;autoCreateTime:false"`
	UpdatedAt   *Timestamp `gorm:"column:updated_at;type:text;autoUpdateTime:false"`
	Status      string     `gorm:"column:status;default:Active"`
}

func (Plan) TableName() string { return "plans" }

// ValidTimeFrame reports whether tf names one of the two plan lists.
func ValidTimeFrame(tf string) bool {
	return tf == TimeFrameWeek || tf == TimeFrameMonth
}
