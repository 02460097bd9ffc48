package services

import (
	"log"

	"github.com/vishnukbarath/sharedtodo/models"

	"gorm.io/gorm"
)

// RecentActivityLimit caps how far back the feed reaches.
const RecentActivityLimit = 20

type ActivityService struct {
	db  *gorm.DB
	hub *RealtimeHub // optional, nil when realtime is disabled
}

func NewActivityService(db *gorm.DB, hub *RealtimeHub) *ActivityService {
	return &ActivityService{db: db, hub: hub}
}

// Log appends an entry to the couple's activity trail. Best-effort: the
// trail is not authoritative, so a failed append never fails the caller's
// mutation.
func (s *ActivityService) Log(coupleID, userID uint, action, details string) {
	entry := models.ActivityLog{
		CoupleID: coupleID,
		UserID:   userID,
		Action:   action,
		Details:  details,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("activity log append failed (couple %d, action %s): %v", coupleID, action, err)
		return
	}
	if s.hub != nil {
		s.hub.BroadcastActivity(coupleID, entry)
	}
}

// Recent returns the newest entries first, capped at RecentActivityLimit.
func (s *ActivityService) Recent(coupleID uint) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.db.
		Where("couple_id = ?", coupleID).
		Order("created_at DESC, id DESC").
		Limit(RecentActivityLimit).
		Find(&logs).Error
	return logs, err
}
