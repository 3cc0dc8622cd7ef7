package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fxrates-console/internal/application"
	"fxrates-console/internal/domain"

	"github.com/go-chi/chi/v5"
)

// Server exposes the tracked session state to the rendering layer: the
// ordered update list with transient notification flags, plus the two user
// actions (schedule and check).
type Server struct {
	tracker *application.Tracker
}

func NewServer(tracker *application.Tracker) *Server { return &Server{tracker: tracker} }

type updateView struct {
	UpdateID    string     `json:"update_id"`
	Base        string     `json:"base"`
	Quote       string     `json:"quote"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	Value       *float64   `json:"value,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Checking    bool       `json:"checking"`
	Error       *string    `json:"error,omitempty"`
}

type notificationsView struct {
	StillPending  bool   `json:"still_pending"`
	HighlightedID string `json:"highlighted_id,omitempty"`
}

type updatesListResponse struct {
	Updates       []updateView      `json:"updates"`
	Notifications notificationsView `json:"notifications"`
	ActionError   string            `json:"action_error,omitempty"`
}

type rateView struct {
	Base      string    `json:"base"`
	Quote     string    `json:"quote"`
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type scheduleRequest struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

func (s *Server) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	codes := s.tracker.Currencies()
	if len(codes) == 0 {
		var err error
		codes, err = s.tracker.LoadCurrencies(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"codes": codes})
}

func (s *Server) GetLatestRate(w http.ResponseWriter, r *http.Request) {
	base := chi.URLParam(r, "base")
	quote := chi.URLParam(r, "quote")

	rate, err := s.tracker.LatestRate(r.Context(), base, quote)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rateView{
		Base:      rate.Base,
		Quote:     rate.Quote,
		Value:     rate.Value,
		UpdatedAt: rate.UpdatedAt,
	})
}

func (s *Server) ListUpdates(w http.ResponseWriter, _ *http.Request) {
	records := s.tracker.Updates()
	views := make([]updateView, 0, len(records))
	for _, rec := range records {
		views = append(views, toView(rec))
	}
	notifications := s.tracker.Notifications()
	writeJSON(w, http.StatusOK, updatesListResponse{
		Updates: views,
		Notifications: notificationsView{
			StillPending:  notifications.StillPending,
			HighlightedID: notifications.HighlightedID,
		},
		ActionError: s.tracker.ActionError(),
	})
}

func (s *Server) GetUpdate(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.tracker.Update(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "update not found")
		return
	}
	writeJSON(w, http.StatusOK, toView(rec))
}

func (s *Server) ScheduleUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req scheduleRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.tracker.ScheduleUpdate(r.Context(), req.Base, req.Quote)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, toView(rec))
}

func (s *Server) CheckUpdate(w http.ResponseWriter, r *http.Request) {
	rec, err := s.tracker.CheckStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toView(rec))
}

func toView(rec domain.UpdateRecord) updateView {
	return updateView{
		UpdateID:    rec.UpdateID,
		Base:        rec.Base,
		Quote:       rec.Quote,
		Status:      string(rec.Status),
		RequestedAt: rec.RequestedAt,
		Value:       rec.Value,
		UpdatedAt:   rec.UpdatedAt,
		Checking:    rec.Checking,
		Error:       rec.Error,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrScheduleInFlight),
		errors.Is(err, domain.ErrUpdateNotPending):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCurrenciesNotLoaded):
		return http.StatusServiceUnavailable
	case isValidationError(err):
		return http.StatusBadRequest
	}
	// Remote-service failures, including *httpx.APIError, surface as a bad
	// gateway with the verbatim upstream message.
	return http.StatusBadGateway
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrBaseRequired,
		domain.ErrQuoteRequired,
		domain.ErrSameCodes,
		domain.ErrBaseUnsupported,
		domain.ErrQuoteUnsupported,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: strings.TrimSpace(msg)})
}
