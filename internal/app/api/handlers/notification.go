package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subtrackr/subtrackr/internal/app/service/notifier"
	subsvc "github.com/subtrackr/subtrackr/internal/app/service/subscription"
	usersvc "github.com/subtrackr/subtrackr/internal/app/service/user"
	"github.com/subtrackr/subtrackr/pkg/response"
	"github.com/subtrackr/subtrackr/pkg/types"
)

func apiGetPreferences(users *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		prefs, err := users.GetPreferences(c.Request.Context(), userID)
		if errors.Is(err, usersvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "user not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(prefs))
	}
}

func apiUpdatePreferences(users *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var upd usersvc.PreferencesUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		prefs, err := users.UpdatePreferences(c.Request.Context(), userID, upd)
		if errors.Is(err, usersvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "user not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(prefs))
	}
}

func apiNotificationHistory(store *notifier.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		status := types.NotificationStatus(c.Query("status"))

		history, err := store.ListHistory(c.Request.Context(), userID, page, limit, status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(history))
	}
}

type testNotificationRequest struct {
	Type    string `json:"type" binding:"required,oneof=email sms"`
	Message string `json:"message" binding:"required"`
}

func apiSendTestNotification(svc *notifier.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req testNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		err := svc.SendTest(c.Request.Context(), userID, types.NotificationType(req.Type), req.Message)
		if errors.Is(err, notifier.ErrChannelDisabled) {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, req.Type+" notifications are not enabled or phone number not provided"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, "failed to send test notification: "+err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "sent"}))
	}
}

// @Summary      Trigger reminders for one subscription
// @Description  Sends email/SMS reminders immediately and returns the delivery records
// @Tags         Notifications
// @Produce      json
// @Param        X-User-ID  header  string  true  "User id"
// @Router       /api/v1/notifications/trigger/{subscriptionId} [post]
func apiTriggerNotifications(svc *notifier.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		notifications, err := svc.TriggerForSubscription(c.Request.Context(), userID, c.Param("subscriptionId"))
		if errors.Is(err, subsvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "subscription not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(notifications))
	}
}

func apiNotificationStats(store *notifier.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		stats, err := store.Stats(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(stats))
	}
}

func RegisterNotificationRoutes(r gin.IRouter, svc *notifier.Service, store *notifier.Store, users *usersvc.Service) {
	r.GET("/notifications/preferences", apiGetPreferences(users))
	r.PUT("/notifications/preferences", apiUpdatePreferences(users))
	r.GET("/notifications/history", apiNotificationHistory(store))
	r.POST("/notifications/test", apiSendTestNotification(svc))
	r.POST("/notifications/trigger/:subscriptionId", apiTriggerNotifications(svc))
	r.GET("/notifications/stats", apiNotificationStats(store))
}
