package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vishnukbarath/sharedtodo/services"
	"github.com/vishnukbarath/sharedtodo/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Auth     *services.AuthService
	Couples  *services.CoupleService
	Uploader *utils.Uploader // optional, nil when S3 is not configured
}

func NewUserController(auth *services.AuthService, couples *services.CoupleService, uploader *utils.Uploader) *UserController {
	return &UserController{Auth: auth, Couples: couples, Uploader: uploader}
}

// GetCurrentUser returns the caller's profile plus coupleId (null while
// unpaired) so the client can route between onboarding and the dashboard.
func (u *UserController) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := u.Auth.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var coupleID any
	if couple, err := u.Couples.GetUserCouple(userID); err == nil {
		coupleID = couple.ID
	} else if !errors.Is(err, services.ErrNotInCouple) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"avatarUrl": user.AvatarURL,
		"createdAt": user.CreatedAt,
		"coupleId":  coupleID,
	})
}

type ProfileInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"` // base64 data URL
}

func (u *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := u.Auth.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Avatar != "" {
		if u.Uploader == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "avatar uploads are not enabled"})
			return
		}
		url, err := u.Uploader.UploadAvatar(input.Avatar, fmt.Sprint(user.ID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to upload avatar: %v", err)})
			return
		}
		user.AvatarURL = url
	}

	if err := u.Auth.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
