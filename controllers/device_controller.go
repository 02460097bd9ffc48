package controllers

import (
	"net/http"

	"github.com/vishnukbarath/sharedtodo/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService // optional, nil when SNS is not configured
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{Push: push}
}

type RegisterDeviceInput struct {
	Platform string `json:"platform" binding:"required,oneof=android ios"`
	Token    string `json:"token" binding:"required"`
}

func (dc *DeviceController) Register(c *gin.Context) {
	if dc.Push == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "push notifications are not enabled"})
		return
	}

	var input RegisterDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(c.GetUint("userID"), input.Platform, input.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dev)
}
