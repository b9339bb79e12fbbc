package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngmaloney/divebot/internal/dive"
	"github.com/ngmaloney/divebot/internal/geocoding"
	"github.com/ngmaloney/divebot/internal/guides"
	"github.com/ngmaloney/divebot/internal/models"
	"github.com/ngmaloney/divebot/internal/noaa"
	"github.com/ngmaloney/divebot/internal/stations"
)

// ReportService builds tide reports and forecasts
type ReportService interface {
	Report(ctx context.Context, location string) (dive.Result, error)
	Weather(ctx context.Context, location string) (string, error)
}

// GuideService manages guided-dive requests
type GuideService interface {
	Create(ctx context.Context, requester, location, date, diveTime string) (models.GuideRequest, string, error)
	Toggle(ctx context.Context, requestID, guide string) (guides.ToggleResult, error)
	Get(ctx context.Context, requestID string) (models.GuideRequest, error)
	List(ctx context.Context) ([]models.GuideRequest, error)
}

// CatalogSource reports the loaded station catalog
type CatalogSource interface {
	Current() *stations.Catalog
}

// Handler handles HTTP requests for reports and guide requests.
type Handler struct {
	reports ReportService
	guides  GuideService
	catalog CatalogSource
}

// NewHandler creates a new HTTP handler.
func NewHandler(reports ReportService, guideSvc GuideService, catalog CatalogSource) *Handler {
	return &Handler{
		reports: reports,
		guides:  guideSvc,
		catalog: catalog,
	}
}

type stationInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	State    string  `json:"state,omitempty"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type reportResponse struct {
	Location   string      `json:"location"`
	Text       string      `json:"text"`
	Station    stationInfo `json:"station"`
	DistanceKm float64     `json:"distance_km"`
}

// GetReport handles GET /v1/report?location=City, ST.
func (h *Handler) GetReport(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location parameter is required"})
		return
	}

	res, err := h.reports.Report(c.Request.Context(), location)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": dive.UserMessage(err, location)})
		return
	}

	c.JSON(http.StatusOK, reportResponse{
		Location: location,
		Text:     res.Text,
		Station: stationInfo{
			ID:       res.Station.ID,
			Name:     res.Station.Name,
			State:    res.Station.State,
			Category: res.Station.Category.String(),
			Lat:      res.Station.Coordinate.Latitude,
			Lng:      res.Station.Coordinate.Longitude,
		},
		DistanceKm: res.DistanceKm,
	})
}

// GetWeather handles GET /v1/weather?location=City, ST.
func (h *Handler) GetWeather(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location parameter is required"})
		return
	}

	text, err := h.reports.Weather(c.Request.Context(), location)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": dive.UserMessage(err, location)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": location, "text": text})
}

type createGuideRequest struct {
	Requester string `json:"requester" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// CreateGuideRequest handles POST /v1/guides.
func (h *Handler) CreateGuideRequest(c *gin.Context) {
	var body createGuideRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, announcement, err := h.guides.Create(c.Request.Context(), body.Requester, body.Location, body.Date, body.Time)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": req, "announcement": announcement})
}

// ListGuideRequests handles GET /v1/guides.
func (h *Handler) ListGuideRequests(c *gin.Context) {
	requests, err := h.guides.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetGuideRequest handles GET /v1/guides/:id.
func (h *Handler) GetGuideRequest(c *gin.Context) {
	req, err := h.guides.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

type toggleGuideRequest struct {
	Guide string `json:"guide" binding:"required"`
}

// ToggleGuide handles POST /v1/guides/:id/toggle.
func (h *Handler) ToggleGuide(c *gin.Context) {
	var body toggleGuideRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.guides.Toggle(c.Request.Context(), c.Param("id"), body.Guide)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": res.Request,
		"added":   res.Added,
		"rsvp":    res.RSVP,
	})
}

// HealthCheck handles GET /healthz.
func (h *Handler) HealthCheck(c *gin.Context) {
	var catalog *stations.Catalog
	if h.catalog != nil {
		catalog = h.catalog.Current()
	}
	if catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "station catalog not loaded",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"stations": catalog.Len(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, geocoding.ErrUnrecognizedLocation), errors.Is(err, guides.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, geocoding.ErrGeocode),
		errors.Is(err, stations.ErrNoStationFound),
		errors.Is(err, guides.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, noaa.ErrTideService), errors.Is(err, dive.ErrWeatherService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
