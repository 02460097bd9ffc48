package controllers

import (
	"errors"
	"net/http"

	"github.com/vishnukbarath/sharedtodo/services"
	"github.com/vishnukbarath/sharedtodo/utils"

	"github.com/gin-gonic/gin"
)

type CoupleController struct {
	Couples *services.CoupleService
	Auth    *services.AuthService
	Mailer  *utils.Mailer // optional, nil when SES is not configured
}

func NewCoupleController(couples *services.CoupleService, auth *services.AuthService, mailer *utils.Mailer) *CoupleController {
	return &CoupleController{Couples: couples, Auth: auth, Mailer: mailer}
}

func (cc *CoupleController) Create(c *gin.Context) {
	userID := c.GetUint("userID")

	couple, err := cc.Couples.CreateCouple(userID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyPaired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already in a couple"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, couple)
}

type JoinInput struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

func (cc *CoupleController) Join(c *gin.Context) {
	userID := c.GetUint("userID")

	var input JoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := cc.Couples.JoinCouple(userID, input.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyPaired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already in a couple"})
		case errors.Is(err, services.ErrInvalidInviteCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite code"})
		case errors.Is(err, services.ErrCoupleFull):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Couple workspace is full"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, couple)
}

// Get returns the caller's workspace with both members inlined.
func (cc *CoupleController) Get(c *gin.Context) {
	userID := c.GetUint("userID")

	couple, err := cc.Couples.GetUserCouple(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotInCouple) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No couple workspace found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	members, err := cc.Couples.GetCoupleMembers(couple.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         couple.ID,
		"inviteCode": couple.InviteCode,
		"createdAt":  couple.CreatedAt,
		"members":    members,
	})
}

type InviteEmailInput struct {
	Email string `json:"email" binding:"required,email"`
}

// SendInvite emails the caller's invite code to their partner-to-be.
func (cc *CoupleController) SendInvite(c *gin.Context) {
	userID := c.GetUint("userID")

	var input InviteEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := cc.Couples.GetUserCouple(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotInCouple) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No couple workspace found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if cc.Mailer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invite emails are not enabled"})
		return
	}

	sender, err := cc.Auth.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if err := cc.Mailer.SendInviteEmail(input.Email, sender.Name, couple.InviteCode); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send invite email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite sent"})
}
