package guides

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ngmaloney/divebot/internal/models"
	"github.com/ngmaloney/divebot/internal/observability"
	"github.com/ngmaloney/divebot/internal/relay"
)

// ErrInvalidRequest is returned when a request is missing its requester or location
var ErrInvalidRequest = errors.New("invalid guide request")

// ToggleResult is the outcome of a guide volunteering or withdrawing
type ToggleResult struct {
	Request models.GuideRequest
	Added   bool
	// RSVP is set when the first guide signs up
	RSVP string
}

// Service orchestrates guide requests and posts announcements to the relay
type Service struct {
	repo    *Repository
	relay   relay.Relay
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a new guide service. relay and metrics may be nil.
func NewService(repo *Repository, r relay.Relay, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	return &Service{
		repo:    repo,
		relay:   r,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Create stores a new request and returns it with its announcement text
func (s *Service) Create(ctx context.Context, requester, location, date, diveTime string) (models.GuideRequest, string, error) {
	requester = strings.TrimSpace(requester)
	location = strings.TrimSpace(location)
	if requester == "" || location == "" {
		return models.GuideRequest{}, "", fmt.Errorf("%w: requester and location are required", ErrInvalidRequest)
	}

	req := models.GuideRequest{
		ID:        uuid.NewString(),
		Requester: requester,
		Location:  location,
		Date:      strings.TrimSpace(date),
		Time:      strings.TrimSpace(diveTime),
		Guides:    []string{},
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, req); err != nil {
		return models.GuideRequest{}, "", err
	}
	if s.metrics != nil {
		s.metrics.GuideRequests.Inc()
	}

	text := Announcement(req)
	s.logger.Info("guide request created", "id", req.ID, "requester", req.Requester, "location", req.Location)
	s.post(ctx, text)
	return req, text, nil
}

// Toggle adds guide to the request, or removes them if already listed
func (s *Service) Toggle(ctx context.Context, requestID, guide string) (ToggleResult, error) {
	guide = strings.TrimSpace(guide)
	if guide == "" {
		return ToggleResult{}, fmt.Errorf("%w: guide is required", ErrInvalidRequest)
	}

	req, added, err := s.repo.ToggleGuide(ctx, requestID, guide)
	if err != nil {
		return ToggleResult{}, err
	}

	result := ToggleResult{Request: req, Added: added}
	// Whenever exactly one guide remains, including a drop from two to one
	if len(req.Guides) == 1 {
		result.RSVP = RSVP(req.Guides)
		s.post(ctx, result.RSVP)
	}

	s.logger.Info("guide toggled", "id", requestID, "guide", guide, "added", added, "guides", len(req.Guides))
	return result, nil
}

// Get returns a request by id
func (s *Service) Get(ctx context.Context, requestID string) (models.GuideRequest, error) {
	return s.repo.Get(ctx, requestID)
}

// List returns all requests, newest first
func (s *Service) List(ctx context.Context) ([]models.GuideRequest, error) {
	return s.repo.List(ctx)
}

// post relays text; delivery failures are logged and do not fail the caller
func (s *Service) post(ctx context.Context, text string) {
	if s.relay == nil {
		return
	}
	if err := s.relay.Send(ctx, text); err != nil {
		s.logger.Warn("relay delivery failed", "error", err)
	}
}

// Announcement renders the channel message for a new request
func Announcement(req models.GuideRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s has requested a guided dive at %s", req.Requester, req.Location)
	if req.Date != "" {
		fmt.Fprintf(&b, " on %s", req.Date)
	}
	if req.Time != "" {
		fmt.Fprintf(&b, " at %s", req.Time)
	}
	b.WriteString("!")
	return b.String()
}

// RSVP renders the message posted when a request gets its first guide
func RSVP(guides []string) string {
	return fmt.Sprintf("RSVP for a dive led by %s!", strings.Join(guides, ", "))
}
