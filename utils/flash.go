package utils

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "flash"

	FlashSuccess = "success"
	FlashError   = "error"
)

type Notice struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func init() {
	gob.Register(Notice{})
}

// FlashMiddleware keeps notices in a cookie signed with secret, so only
// notices this server queued are ever shown.
func FlashMiddleware(secret string, secure bool) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(flashCookie, store)
}

// AddFlash queues a notice for the next rendered page.
func AddFlash(c *gin.Context, level, text string) {
	session, ok := flashSession(c)
	if !ok {
		ErrorLogger.Printf("flash: no session store for %s", c.FullPath())
		return
	}
	session.AddFlash(Notice{Level: level, Text: text})
	if err := session.Save(); err != nil {
		ErrorLogger.Printf("flash save: %v", err)
	}
}

// PopFlash returns the queued notices and clears them.
func PopFlash(c *gin.Context) []Notice {
	notices := []Notice{}
	session, ok := flashSession(c)
	if !ok {
		return notices
	}

	flashes := session.Flashes()
	if len(flashes) == 0 {
		return notices
	}
	for _, f := range flashes {
		if n, ok := f.(Notice); ok {
			notices = append(notices, n)
		}
	}
	if err := session.Save(); err != nil {
		ErrorLogger.Printf("flash save: %v", err)
	}
	return notices
}

// flashSession is false on engines without FlashMiddleware.
func flashSession(c *gin.Context) (sessions.Session, bool) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil, false
	}
	return sessions.Default(c), true
}
