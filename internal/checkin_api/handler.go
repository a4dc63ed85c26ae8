package checkin_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ms-checkin/internal/auth"
	"ms-checkin/internal/badge"
	"ms-checkin/internal/config"
	ledger "ms-checkin/internal/ledger/service"
	"ms-checkin/internal/logger"
	roster "ms-checkin/internal/roster/service"
	"ms-checkin/internal/summary"
	"ms-checkin/internal/utils"
)

type Handler struct {
	Roster  *roster.Service
	Ledger  *ledger.Service
	Summary *summary.Service
	Badge   *badge.Generator
	Config  *config.Config
	Logger  *logger.Logger
}

func NewHandler(rosterSvc *roster.Service, ledgerSvc *ledger.Service, summarySvc *summary.Service, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		Roster:  rosterSvc,
		Ledger:  ledgerSvc,
		Summary: summarySvc,
		Badge:   badge.NewGenerator(),
		Config:  cfg,
		Logger:  log,
	}
}

// RegisterRoutes registers the check-in routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/checkin", func(r chi.Router) {
		r.Get("/resolve", h.ResolveBarcode)
		r.Post("/", h.CheckIn)
		r.Get("/recent", h.RecentCheckins)
		r.Get("/summary", h.GetSummary)
		r.Post("/summary/publish", h.PublishSummary)
		r.Get("/export", h.ExportCSV)
		r.Get("/badge/{barcode}", h.BadgeQR)
	})
}

// currentOperator maps the authenticated identity onto its ledger.
func (h *Handler) currentOperator(r *http.Request) (config.Operator, bool) {
	email := auth.OperatorEmail(r.Context())
	if email == "" {
		return config.Operator{}, false
	}
	ledgerID, ok := h.Config.Checkin.LedgerFor(email)
	if !ok {
		return config.Operator{}, false
	}
	return config.Operator{Email: email, LedgerID: ledgerID}, true
}

// ResolveBarcode looks a scanned barcode up in the roster. An
// unloadable roster and an unknown barcode are distinct outcomes.
func (h *Handler) ResolveBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := r.URL.Query().Get("barcode")
	if barcode == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("barcode query parameter is required", ""))
		return
	}

	attendee, err := h.Roster.Resolve(r.Context(), barcode)
	switch {
	case errors.Is(err, roster.ErrRosterUnavailable):
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse("Roster failed to load", err.Error()))
		return
	case errors.Is(err, roster.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("No attendee found for this barcode", ""))
		return
	case err != nil:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Lookup failed", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(fmt.Sprintf("Found: %s", attendee.Name), attendee))
}

type checkinRequest struct {
	Barcode string `json:"barcode"`
	Event   string `json:"event"`
}

// CheckIn records one event for one attendee in the operator's ledger.
// Duplicates are suppressed and reported as a successful no-op.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	operator, ok := h.currentOperator(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.ErrorResponse("Operator is not mapped to a ledger", ""))
		return
	}

	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	if req.Barcode == "" || req.Event == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("barcode and event are required", ""))
		return
	}

	attendee, err := h.Roster.Resolve(r.Context(), req.Barcode)
	switch {
	case errors.Is(err, roster.ErrRosterUnavailable):
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse("Roster failed to load", err.Error()))
		return
	case errors.Is(err, roster.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("No attendee found for this barcode", ""))
		return
	case err != nil:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Lookup failed", err.Error()))
		return
	}

	record, err := h.Ledger.CheckIn(r.Context(), operator, *attendee, req.Event, time.Now())
	switch {
	case errors.Is(err, ledger.ErrAlreadyCheckedIn):
		utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(
			fmt.Sprintf("%s already checked in for %s", attendee.Name, req.Event),
			map[string]interface{}{"already_checked_in": true, "barcode": attendee.Barcode, "event": req.Event},
		))
		return
	case errors.Is(err, ledger.ErrUnknownEvent):
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Unknown event", err.Error()))
		return
	case err != nil:
		// The record must not be assumed created; the operator retries
		// by re-scanning.
		h.logError("CHECKIN", fmt.Sprintf("Check-in failed for %s/%s: %v", req.Barcode, req.Event, err))
		utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse("Failed to record check-in", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse(
		fmt.Sprintf("%s recorded for %s in %s", record.Event, record.Name, record.LedgerID),
		record,
	))
}

// RecentCheckins returns the operator's latest ledger entries, newest
// first.
func (h *Handler) RecentCheckins(w http.ResponseWriter, r *http.Request) {
	operator, ok := h.currentOperator(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.ErrorResponse("Operator is not mapped to a ledger", ""))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records, err := h.Ledger.RecentForLedger(r.Context(), operator.LedgerID, limit)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse(fmt.Sprintf("Error loading ledger %s", operator.LedgerID), err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Recent check-ins", records))
}

// GetSummary recomputes the dashboard across every operator's ledger.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.Summary.Summarize(r.Context())
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to build summary", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Check-in summary", result))
}

// PublishSummary rewrites the persisted dashboard table from a fresh
// summary.
func (h *Handler) PublishSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.Summary.Summarize(r.Context())
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to build summary", err.Error()))
		return
	}

	if err := h.Summary.RewriteDashboard(r.Context(), result); err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse("Failed to publish dashboard", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Dashboard published", nil))
}

// ExportCSV streams every ledger flattened into one CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.Summary.Summarize(r.Context())
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to build export", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="all_checkins.csv"`)
	if err := summary.WriteCSV(w, result.FlatExport); err != nil {
		h.logError("EXPORT", fmt.Sprintf("CSV export failed: %v", err))
	}
}

func (h *Handler) logError(category, message string) {
	if h.Logger != nil {
		h.Logger.Error(category, message)
	}
}

// BadgeQR renders an attendee's barcode as a QR PNG for badge reprints.
func (h *Handler) BadgeQR(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	attendee, err := h.Roster.Resolve(r.Context(), barcode)
	switch {
	case errors.Is(err, roster.ErrRosterUnavailable):
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse("Roster failed to load", err.Error()))
		return
	case errors.Is(err, roster.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("No attendee found for this barcode", ""))
		return
	case err != nil:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Lookup failed", err.Error()))
		return
	}

	png, err := h.Badge.BarcodePNG(attendee.Barcode)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to render badge", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
