package controllers

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/pkg/utils"
)

// NotificationsWsHandler registers the caller for review/unlock events.
// The token rides in the query string since browsers cannot set headers
// on websocket upgrades.
func NotificationsWsHandler(c *websocket.Conn) {
	token := c.Query("token")
	var userID uuid.UUID
	if token != "" {
		head := "Bearer " + token
		userID, _ = utils.ExtractUserIDFromHeader(head)
	}
	if userID == uuid.Nil {
		_ = c.Close()
		return
	}

	utils.DefaultNotifier.Register(userID, c)
	defer utils.DefaultNotifier.Unregister(userID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
