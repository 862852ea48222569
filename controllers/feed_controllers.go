package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/inamrestro/restaurant-app/feed"
)

type FeedController struct {
	Hub      *feed.Hub
	upgrader websocket.Upgrader
}

// NewFeedController accepts websocket upgrades from the given origins; an
// empty list means same-origin only.
func NewFeedController(hub *feed.Hub, origins []string) *FeedController {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	fc := &FeedController{Hub: hub}
	fc.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}
	return fc
}

// Stream -> websocket feed of orders, contact messages and catalog changes
func (fc *FeedController) Stream(c *gin.Context) {
	ws, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	fc.Hub.Serve(ws, currentUser(c).Username)
}
