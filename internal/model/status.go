package model

// Canonical status vocabulary. The status table is seeded with exactly these
// five values and is read-only afterwards.
const (
	StatusReadyToPick = "ready_to_pick"
	StatusInProgress  = "in_progress"
	StatusBlocked     = "blocked"
	StatusCompleted   = "completed"
	StatusDeleted     = "deleted"
)

// Status is a row of the task lifecycle lookup table.
type Status struct {
	ID          uint   `gorm:"primaryKey"`
	StatusName  string `gorm:"column:status_name;uniqueIndex"`
	DisplayName string `gorm:"column:display_name"`
}

func (Status) TableName() string { return "status" }
