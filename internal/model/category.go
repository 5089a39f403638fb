package model

// Category groups tasks by area (work, leisure, study, etc.). Seeded at
// startup and read-only from the application's perspective.
type Category struct {
	ID           uint   `gorm:"primaryKey"`
	CategoryName string `gorm:"column:category_name;uniqueIndex"`
	DisplayName  string `gorm:"column:display_name"`
}

func (Category) TableName() string { return "category" }
