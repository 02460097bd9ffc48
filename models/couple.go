package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// MaxCoupleMembers caps a workspace at two people.
const MaxCoupleMembers = 2

type Couple struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	InviteCode string    `gorm:"uniqueIndex;not null" json:"inviteCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CoupleMember binds a user to a couple for the lifetime of the account.
// Both invariants live in the store, not just in application checks:
// the unique index on UserID makes pairing a one-way transition, and the
// (CoupleID, Role) index gives each workspace exactly one admin slot and
// one member slot, so two concurrent joins can never commit a third row
// no matter how their transactions interleave.
type CoupleMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"uniqueIndex;not null" json:"userId"`
	CoupleID uint      `gorm:"uniqueIndex:idx_couple_slot;not null" json:"coupleId"`
	Role     string    `gorm:"size:16;not null;uniqueIndex:idx_couple_slot" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}
