package models

import "time"

// Activity action tags. The log is append-only; nothing in the API
// mutates or deletes entries once written.
const (
	ActionCreatedCouple = "created_couple"
	ActionJoinedCouple  = "joined_couple"
	ActionCreateTodo    = "create_todo"
	ActionCompleteTodo  = "complete_todo"
)

type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CoupleID  uint      `gorm:"index;not null" json:"coupleId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
