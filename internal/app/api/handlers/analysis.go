package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subtrackr/subtrackr/internal/app/service/analysis"
	"github.com/subtrackr/subtrackr/pkg/response"
)

// The analysis endpoints are all views over the same computed result; each
// request recomputes (or reuses the short-lived cache of) the full analysis
// and projects the slice the caller asked for.

// @Summary      Full portfolio analysis
// @Description  Spending totals, category breakdown, insights, recommendations, health score and savings opportunities
// @Tags         Analysis
// @Produce      json
// @Param        X-User-ID  header  string  true  "User id"
// @Router       /api/v1/analysis [get]
func apiAnalysis(svc *analysis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		result, err := svc.AnalyzeUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(result))
	}
}

func apiInsights(svc *analysis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		result, err := svc.AnalyzeUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(gin.H{
			"insights":     result.Insights,
			"health_score": result.HealthScore,
		}))
	}
}

func apiRecommendations(svc *analysis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		result, err := svc.AnalyzeUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(gin.H{
			"recommendations":       result.Recommendations,
			"savings_opportunities": result.SavingsOpportunities,
		}))
	}
}

func apiCategories(svc *analysis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		result, err := svc.AnalyzeUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(gin.H{
			"categories":       result.Categories,
			"monthly_spending": result.MonthlySpending,
			"yearly_spending":  result.YearlySpending,
		}))
	}
}

func apiHealth(svc *analysis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		summary, err := svc.HealthSummary(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}

func apiSavings(svc *analysis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		summary, err := svc.SavingsSummary(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}

func RegisterAnalysisRoutes(r gin.IRouter, svc *analysis.Service) {
	r.GET("/analysis", apiAnalysis(svc))
	r.GET("/analysis/insights", apiInsights(svc))
	r.GET("/analysis/recommendations", apiRecommendations(svc))
	r.GET("/analysis/categories", apiCategories(svc))
	r.GET("/analysis/health", apiHealth(svc))
	r.GET("/analysis/savings", apiSavings(svc))
}
