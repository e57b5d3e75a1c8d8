package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/service"
)

type alertService interface {
	ListForTrip(ctx context.Context, userID, tripID int64) ([]domain.SafetyAlert, error)
	Respond(ctx context.Context, alertID int64, kind domain.ResponseKind, message string) (*domain.SafetyAlert, error)
	CreateManual(ctx context.Context, userID, tripID int64, message string) (*domain.SafetyAlert, error)
}

type respondRequest struct {
	Response string `json:"response" binding:"required"`
	Message  string `json:"message"`
}

type manualAlertRequest struct {
	UserID  int64  `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type AlertHandler struct {
	alertSvc alertService
}

func NewAlertHandler(alertSvc alertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

func (h *AlertHandler) Register(r *gin.RouterGroup) {
	r.GET("/trips/:trip_id/alerts", h.ListAlerts)
	r.POST("/trips/:trip_id/manual-alert", h.CreateManualAlert)
	r.POST("/alerts/:alert_id/respond", h.RespondToAlert)
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("trip_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip_id"})
		return
	}
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id parameter"})
		return
	}

	alerts, err := h.alertSvc.ListForTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	if alerts == nil {
		alerts = []domain.SafetyAlert{}
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) RespondToAlert(c *gin.Context) {
	alertID, err := strconv.ParseInt(c.Param("alert_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert_id"})
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	kind := domain.ResponseKind(req.Response)
	if kind != domain.ResponseSafe && kind != domain.ResponseHelp {
		c.JSON(http.StatusBadRequest, gin.H{"error": "response must be 'safe' or 'help'"})
		return
	}

	alert, err := h.alertSvc.Respond(c.Request.Context(), alertID, kind, req.Message)
	switch {
	case errors.Is(err, service.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	case errors.Is(err, service.ErrAlertNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "alert is not active"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record response"})
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) CreateManualAlert(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("trip_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip_id"})
		return
	}

	var req manualAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	alert, err := h.alertSvc.CreateManual(c.Request.Context(), req.UserID, tripID, req.Message)
	switch {
	case errors.Is(err, service.ErrNoLocation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no location data for this trip"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create alert"})
		return
	}

	c.JSON(http.StatusCreated, alert)
}
