package services

import (
	"errors"
	"strings"

	"github.com/vishnukbarath/sharedtodo/models"
	"github.com/vishnukbarath/sharedtodo/utils"

	"gorm.io/gorm"
)

var (
	ErrAlreadyPaired     = errors.New("already in a couple workspace")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrCoupleFull        = errors.New("couple workspace is full")
	ErrNotInCouple       = errors.New("not in a couple workspace")
)

// CoupleService is the pairing registry: it owns couple creation, invite
// codes, the two-member cap and the "which couple does this user belong
// to" lookup that gates every other read and write.
type CoupleService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewCoupleService(db *gorm.DB, activity *ActivityService) *CoupleService {
	return &CoupleService{db: db, activity: activity}
}

// CreateCouple starts a new workspace with the caller as admin. Pairing is
// one-way: once a user has a membership row they can never create or join
// again.
func (s *CoupleService) CreateCouple(userID uint) (*models.Couple, error) {
	paired, err := s.isPaired(userID)
	if err != nil {
		return nil, err
	}
	if paired {
		return nil, ErrAlreadyPaired
	}

	code, err := s.newInviteCode()
	if err != nil {
		return nil, err
	}

	couple := models.Couple{InviteCode: code}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&couple).Error; err != nil {
			return err
		}
		member := models.CoupleMember{
			UserID:   userID,
			CoupleID: couple.ID,
			Role:     models.RoleAdmin,
		}
		// The unique index on user_id backstops a concurrent create/join
		// race: the second insert fails and rolls the couple back.
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyPaired
		}
		return nil, err
	}

	s.activity.Log(couple.ID, userID, models.ActionCreatedCouple, "Created the workspace")
	return &couple, nil
}

// JoinCouple pairs the caller into an existing workspace by invite code.
// Codes are issued uppercase; comparison is case-normalized here so a
// hand-typed lowercase code still matches.
func (s *CoupleService) JoinCouple(userID uint, inviteCode string) (*models.Couple, error) {
	paired, err := s.isPaired(userID)
	if err != nil {
		return nil, err
	}
	if paired {
		return nil, ErrAlreadyPaired
	}

	code := strings.ToUpper(strings.TrimSpace(inviteCode))

	var couple models.Couple
	if err := s.db.Where("invite_code = ?", code).First(&couple).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Friendly pre-check; the member slot index is the real arbiter
		// below, so a stale count here cannot admit a third member.
		var count int64
		if err := tx.Model(&models.CoupleMember{}).
			Where("couple_id = ?", couple.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxCoupleMembers {
			return ErrCoupleFull
		}

		member := models.CoupleMember{
			UserID:   userID,
			CoupleID: couple.ID,
			Role:     models.RoleMember,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Two indexes can fire: a row for this user means a pairing
			// race lost to the caller's own other request, otherwise a
			// concurrent join took the couple's last slot. The re-check
			// runs outside the rolled-back transaction.
			if paired, perr := s.isPaired(userID); perr == nil && paired {
				return nil, ErrAlreadyPaired
			}
			return nil, ErrCoupleFull
		}
		return nil, err
	}

	s.activity.Log(couple.ID, userID, models.ActionJoinedCouple, "Joined the workspace")
	return &couple, nil
}

// GetUserCouple resolves the caller's workspace. This is the access-scoping
// gate: todo, comment and activity operations call it first and refuse to
// proceed on ErrNotInCouple.
func (s *CoupleService) GetUserCouple(userID uint) (*models.Couple, error) {
	var member models.CoupleMember
	if err := s.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInCouple
		}
		return nil, err
	}

	var couple models.Couple
	if err := s.db.First(&couple, member.CoupleID).Error; err != nil {
		return nil, err
	}
	return &couple, nil
}

// GetCoupleMembers returns the 0-2 users of a workspace in join order.
func (s *CoupleService) GetCoupleMembers(coupleID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN couple_members ON couple_members.user_id = users.id").
		Where("couple_members.couple_id = ?", coupleID).
		Order("couple_members.id").
		Find(&users).Error
	return users, err
}

func (s *CoupleService) isPaired(userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.CoupleMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// newInviteCode generates a code and re-rolls on the (rare) collision with
// an existing workspace.
func (s *CoupleService) newInviteCode() (string, error) {
	for i := 0; i < 10; i++ {
		code := utils.GenerateInviteCode()
		var count int64
		if err := s.db.Model(&models.Couple{}).
			Where("invite_code = ?", code).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}
