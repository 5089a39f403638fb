package model

import "time"

// Task is a single to-do item. Every task has exactly one owner, one category
// and one status; "deleted" is a status value, not a row removal.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	TaskName    string    `gorm:"column:task_name"`
	StatusID    uint      `gorm:"column:status_id;index"`
	UserID      uint      `gorm:"column:user_id;index"`
	CategoryID  uint      `gorm:"column:category_id;index"`
	CreatedDate time.Time `gorm:"column:created_date"`
	UpdatedDate time.Time `gorm:"column:updated_date"`
}

func (Task) TableName() string { return "tasks" }

// TaskView is the read model for listings, with status, category and owner
// names joined in.
type TaskView struct {
	ID           uint
	TaskName     string
	Username     string
	StatusName   string
	CategoryName string
	CreatedDate  time.Time
	UpdatedDate  time.Time
}
