package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/google/uuid"
)

// CreateNotification writes an inbox notification and mirrors it to push.
// Always best-effort: callers never fail because a notification did not land.
func CreateNotification(userID uuid.UUID, notifType, title, body string, metadata map[string]interface{}) {
	notif := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}

	var pushData map[string]string
	if metadata != nil {
		if data, err := json.Marshal(metadata); err == nil {
			s := string(data)
			notif.Metadata = &s
		}
		pushData = make(map[string]string)
		for k, v := range metadata {
			pushData[k] = fmt.Sprintf("%v", v)
		}
		pushData["type"] = notifType
	}

	if err := database.DB.Create(&notif).Error; err != nil {
		log.Printf("notifications: create %q for %s failed: %v", notifType, userID, err)
		return
	}

	if Push != nil {
		go Push.SendToUser(userID, title, body, pushData)
	}
}
