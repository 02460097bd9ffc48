package models

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// AssignedTo is a display label, not a reference to a member.
const (
	AssignedHim  = "him"
	AssignedHer  = "her"
	AssignedBoth = "both"
)

type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CoupleID    uint       `gorm:"index;not null" json:"coupleId"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      string     `gorm:"size:16;not null;default:pending" json:"status"`
	Priority    string     `gorm:"size:16;not null;default:medium" json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  string     `gorm:"size:16;default:both" json:"assignedTo"`
	CreatedBy   uint       `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	Comments    []Comment  `gorm:"foreignKey:TodoID" json:"comments"`
}
