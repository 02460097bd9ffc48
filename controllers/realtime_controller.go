package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/vishnukbarath/sharedtodo/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	Hub     *services.RealtimeHub
	Couples *services.CoupleService
}

func NewRealtimeController(hub *services.RealtimeHub, couples *services.CoupleService) *RealtimeController {
	return &RealtimeController{Hub: hub, Couples: couples}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// ActivityWS streams the couple's activity feed over a websocket. The
// caller must already be paired; the socket is registered under their
// coupleId so both partners see the same events.
func (rc *RealtimeController) ActivityWS(c *gin.Context) {
	couple, err := rc.Couples.GetUserCouple(c.GetUint("userID"))
	if err != nil {
		if errors.Is(err, services.ErrNotInCouple) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not in a couple"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{CoupleID: couple.ID, Conn: conn}
	rc.Hub.Register(cl)

	// ping to keep connections alive through proxies; writes go through
	// the client so they never race a hub broadcast
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.Send(websocket.PingMessage, nil); err != nil {
				rc.Hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error, then unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.Hub.Unregister(cl)
			return
		}
	}
}
