package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	subsvc "github.com/subtrackr/subtrackr/internal/app/service/subscription"
	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/response"
	"github.com/subtrackr/subtrackr/pkg/types"
)

// Authentication is handled upstream; handlers trust the X-User-ID header
// set by the gateway.
const userIDHeader = "X-User-ID"

func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing "+userIDHeader+" header"))
		return "", false
	}
	return userID, true
}

// SubscriptionRequest is the write payload for create and update. Invariants
// (non-negative amount, valid enums) are enforced here, at the store write
// path; the analysis core does not re-validate.
type SubscriptionRequest struct {
	Name            string     `json:"name" binding:"required"`
	Category        string     `json:"category" binding:"omitempty,oneof=streaming music software gaming fitness education utilities rent insurance membership other"`
	Description     string     `json:"description"`
	Amount          float64    `json:"amount" binding:"gte=0"`
	Currency        string     `json:"currency"`
	BillingCycle    string     `json:"billing_cycle" binding:"required,oneof=daily weekly monthly quarterly yearly"`
	NextBillingDate time.Time  `json:"next_billing_date" binding:"required"`
	TrialEndDate    *time.Time `json:"trial_end_date"`
	IsActive        *bool      `json:"is_active"`
	AutoRenew       *bool      `json:"auto_renew"`
	Website         string     `json:"website"`
	AccountEmail    string     `json:"account_email"`
	Notes           string     `json:"notes"`
	Tags            []string   `json:"tags"`
	PaymentMethod   string     `json:"payment_method"`
}

func (r *SubscriptionRequest) toModel(userID string) *models.Subscription {
	sub := &models.Subscription{
		UserID:          userID,
		Name:            r.Name,
		Category:        types.Category(r.Category),
		Description:     r.Description,
		Amount:          r.Amount,
		Currency:        r.Currency,
		BillingCycle:    types.BillingCycle(r.BillingCycle),
		NextBillingDate: r.NextBillingDate,
		TrialEndDate:    r.TrialEndDate,
		IsActive:        true,
		AutoRenew:       true,
		Website:         r.Website,
		AccountEmail:    r.AccountEmail,
		Notes:           r.Notes,
		Tags:            datatypes.JSONSlice[string](r.Tags),
		PaymentMethod:   r.PaymentMethod,
	}
	if r.IsActive != nil {
		sub.IsActive = *r.IsActive
	}
	if r.AutoRenew != nil {
		sub.AutoRenew = *r.AutoRenew
	}
	return sub
}

// @Summary      List subscriptions
// @Description  Lists the user's subscriptions with optional filters
// @Tags         Subscriptions
// @Produce      json
// @Param        X-User-ID  header  string  true  "User id"
// @Router       /api/v1/subscriptions [get]
func apiListSubscriptions(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		q := subsvc.ListQuery{
			Category:  types.Category(c.Query("category")),
			Search:    c.Query("search"),
			SortBy:    c.Query("sort_by"),
			SortOrder: c.Query("sort_order"),
		}
		if v := c.Query("is_active"); v != "" {
			active := v == "true"
			q.IsActive = &active
		}

		subs, err := svc.List(c.Request.Context(), userID, q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(subs))
	}
}

func apiGetSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		sub, err := svc.GetByID(c.Request.Context(), userID, c.Param("id"))
		if errors.Is(err, subsvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "subscription not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      Create subscription
// @Tags         Subscriptions
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "User id"
// @Router       /api/v1/subscriptions [post]
func apiCreateSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		sub := req.toModel(userID)
		if err := svc.Create(c.Request.Context(), sub); err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusCreated, response.OKT(sub))
	}
}

func apiUpdateSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		sub := req.toModel(userID)
		sub.ID = c.Param("id")
		updated, err := svc.Update(c.Request.Context(), userID, sub)
		if errors.Is(err, subsvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "subscription not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(updated))
	}
}

func apiDeleteSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		err := svc.Delete(c.Request.Context(), userID, c.Param("id"))
		if errors.Is(err, subsvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "subscription not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func apiSubscriptionOverview(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		overview, err := svc.Overview(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(overview))
	}
}

func apiSubscriptionsDueSoon(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		days := 7
		if v := c.Query("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}
		subs, err := svc.FindDueSoon(c.Request.Context(), userID, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(subs))
	}
}

// @Summary      Renew subscription
// @Description  Advances the billing date one cycle and records the payment
// @Tags         Subscriptions
// @Produce      json
// @Param        X-User-ID  header  string  true  "User id"
// @Router       /api/v1/subscriptions/{id}/renew [put]
func apiRenewSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		sub, err := svc.Renew(c.Request.Context(), userID, c.Param("id"))
		if errors.Is(err, subsvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "subscription not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *subsvc.Service) {
	r.GET("/subscriptions", apiListSubscriptions(svc))
	r.POST("/subscriptions", apiCreateSubscription(svc))
	r.GET("/subscriptions/stats/overview", apiSubscriptionOverview(svc))
	r.GET("/subscriptions/due-soon", apiSubscriptionsDueSoon(svc))
	r.GET("/subscriptions/:id", apiGetSubscription(svc))
	r.PUT("/subscriptions/:id", apiUpdateSubscription(svc))
	r.DELETE("/subscriptions/:id", apiDeleteSubscription(svc))
	r.PUT("/subscriptions/:id/renew", apiRenewSubscription(svc))
}
