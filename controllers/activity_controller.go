package controllers

import (
	"errors"
	"net/http"

	"github.com/vishnukbarath/sharedtodo/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Activity *services.ActivityService
	Couples  *services.CoupleService
}

func NewActivityController(activity *services.ActivityService, couples *services.CoupleService) *ActivityController {
	return &ActivityController{Activity: activity, Couples: couples}
}

func (ac *ActivityController) List(c *gin.Context) {
	couple, err := ac.Couples.GetUserCouple(c.GetUint("userID"))
	if err != nil {
		if errors.Is(err, services.ErrNotInCouple) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not in a couple"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logs, err := ac.Activity.Recent(couple.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
