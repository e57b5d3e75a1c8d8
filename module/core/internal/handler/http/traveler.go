package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

type sampleService interface {
	GetLatest(ctx context.Context, userID, tripID int64) (*domain.LocationSample, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationSample, error)
}

type sampleResponse struct {
	UserID    int64   `json:"user_id"`
	TripID    int64   `json:"trip_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
	IsManual  bool    `json:"is_manual"`
}

type TravelerHandler struct {
	sampleSvc sampleService
}

func NewTravelerHandler(sampleSvc sampleService) *TravelerHandler {
	return &TravelerHandler{sampleSvc: sampleSvc}
}

func (h *TravelerHandler) Register(r *gin.RouterGroup) {
	r.GET("/trips/:trip_id/travelers/:user_id/location", h.GetLatestLocation)
	r.GET("/trips/:trip_id/travelers/:user_id/history", h.GetHistory)
}

func (h *TravelerHandler) GetLatestLocation(c *gin.Context) {
	tripID, userID, ok := tripAndUserIDs(c)
	if !ok {
		return
	}

	sample, err := h.sampleSvc.GetLatest(c.Request.Context(), userID, tripID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location data for trip"})
		return
	}

	c.JSON(http.StatusOK, toSampleResponse(sample))
}

func (h *TravelerHandler) GetHistory(c *gin.Context) {
	tripID, userID, ok := tripAndUserIDs(c)
	if !ok {
		return
	}

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		UserID: userID,
		TripID: tripID,
		Start:  time.Unix(start, 0),
		End:    time.Unix(end, 0),
	}

	samples, err := h.sampleSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]sampleResponse, len(samples))
	for i := range samples {
		results[i] = toSampleResponse(&samples[i])
	}
	c.JSON(http.StatusOK, results)
}

func tripAndUserIDs(c *gin.Context) (tripID, userID int64, ok bool) {
	tripID, err := strconv.ParseInt(c.Param("trip_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip_id"})
		return 0, 0, false
	}
	userID, err = strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return 0, 0, false
	}
	return tripID, userID, true
}

func toSampleResponse(s *domain.LocationSample) sampleResponse {
	return sampleResponse{
		UserID:    s.UserID,
		TripID:    s.TripID,
		Latitude:  s.Coordinate.Lat,
		Longitude: s.Coordinate.Lon,
		Timestamp: s.Timestamp.Unix(),
		IsManual:  s.IsManual,
	}
}
