package disasters

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/json"
	"github.com/cindermoth/reliefgrid/internal/persistence/store"
	"github.com/cindermoth/reliefgrid/internal/presentation/utils"
)

type Handler struct {
	store *store.Store
}

func NewHandler(store *store.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// CreateDisasterHandler godoc
// @Summary      Register a new disaster
// @Description  Creates a disaster record, geocoding the location name when one is given. Geocoding failure is tolerated; the record is stored without a point.
// @Tags         disasters
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting principal"
// @Param        request body createDisasterRequest true "Disaster details"
// @Success      201 {object} disasterResponse "Disaster created"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      401 {object} json.ErrorResponse "Unknown or missing principal"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /disasters [post]
func (h *Handler) CreateDisasterHandler(w http.ResponseWriter, r *http.Request) {
	var req createDisasterRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	actor := utils.PrincipalFrom(r.Context())
	if actor.IsZero() {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	disaster, err := h.store.CreateDisaster(r.Context(), actor, store.CreateDisasterInput{
		Title:        req.Title,
		LocationName: req.LocationName,
		Description:  req.Description,
		Tags:         req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			json.WriteError(w, http.StatusBadRequest, err, "Invalid disaster payload")
		default:
			log.Printf("Failed to create disaster for %s: %v", actor.ID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusCreated, newDisasterResponse(disaster))
}

// ListDisastersHandler godoc
// @Summary      List disasters
// @Description  Returns disaster summaries, newest first, optionally filtered by tag and owner
// @Tags         disasters
// @Produce      json
// @Param        tag query string false "Only disasters carrying this tag (case-insensitive)"
// @Param        owner query string false "Only disasters owned by this principal"
// @Success      200 {array} disasterSummaryResponse "Matching disasters"
// @Router       /disasters [get]
func (h *Handler) ListDisastersHandler(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	owner := r.URL.Query().Get("owner")

	listed := h.store.ListDisasters(r.Context(), tag, owner)

	resp := make([]disasterSummaryResponse, 0, len(listed))
	for _, d := range listed {
		resp = append(resp, newDisasterSummaryResponse(d))
	}

	json.Write(w, http.StatusOK, resp)
}

// GetDisasterHandler godoc
// @Summary      Get one disaster
// @Description  Returns the full aggregate including reports and resources
// @Tags         disasters
// @Produce      json
// @Param        disasterID path string true "Disaster ID"
// @Success      200 {object} disasterResponse "The disaster"
// @Failure      400 {object} json.ErrorResponse "Missing disaster ID"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Router       /disasters/{disasterID} [get]
func (h *Handler) GetDisasterHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	disaster, err := h.store.GetDisaster(r.Context(), disasterID)
	if err != nil {
		json.WriteNotFoundError(w, "Disaster not found")
		return
	}

	json.Write(w, http.StatusOK, newDisasterResponse(disaster))
}

// UpdateDisasterHandler godoc
// @Summary      Update a disaster
// @Description  Applies a partial update. Changing the location name re-geocodes it. Only the owner or an admin may update.
// @Tags         disasters
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting principal"
// @Param        disasterID path string true "Disaster ID"
// @Param        request body updateDisasterRequest true "Fields to change"
// @Success      200 {object} disasterResponse "Updated disaster"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      401 {object} json.ErrorResponse "Unknown or missing principal"
// @Failure      403 {object} json.ErrorResponse "Not the owner or an admin"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /disasters/{disasterID} [patch]
func (h *Handler) UpdateDisasterHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	var req updateDisasterRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	actor, ok := h.authorizeOwner(w, r, disasterID)
	if !ok {
		return
	}

	disaster, err := h.store.UpdateDisaster(r.Context(), actor, disasterID, store.UpdateDisasterInput{
		Title:        req.Title,
		LocationName: req.LocationName,
		Description:  req.Description,
		Tags:         req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDisasterNotFound):
			json.WriteNotFoundError(w, "Disaster not found")
		case errors.Is(err, domain.ErrInvalidInput):
			json.WriteError(w, http.StatusBadRequest, err, "Invalid disaster payload")
		default:
			log.Printf("Failed to update disaster %s: %v", disasterID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, newDisasterResponse(disaster))
}

// DeleteDisasterHandler godoc
// @Summary      Delete a disaster
// @Description  Removes the disaster and everything attached to it: reports, resources, geo index entries. The archived audit trail is the only survivor. Only the owner or an admin may delete.
// @Tags         disasters
// @Produce      json
// @Param        X-User-ID header string true "Acting principal"
// @Param        disasterID path string true "Disaster ID"
// @Success      204 "Disaster deleted"
// @Failure      400 {object} json.ErrorResponse "Missing disaster ID"
// @Failure      401 {object} json.ErrorResponse "Unknown or missing principal"
// @Failure      403 {object} json.ErrorResponse "Not the owner or an admin"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /disasters/{disasterID} [delete]
func (h *Handler) DeleteDisasterHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	actor, ok := h.authorizeOwner(w, r, disasterID)
	if !ok {
		return
	}

	if err := h.store.DeleteDisaster(r.Context(), actor, disasterID); err != nil {
		switch {
		case errors.Is(err, domain.ErrDisasterNotFound):
			json.WriteNotFoundError(w, "Disaster not found")
		default:
			log.Printf("Failed to delete disaster %s: %v", disasterID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetAuditTrailHandler godoc
// @Summary      Read a disaster's audit trail
// @Description  Returns the append-only mutation trail in commit order
// @Tags         disasters
// @Produce      json
// @Param        disasterID path string true "Disaster ID"
// @Success      200 {array} auditEntryResponse "Audit entries, oldest first"
// @Failure      400 {object} json.ErrorResponse "Missing disaster ID"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Router       /disasters/{disasterID}/audit [get]
func (h *Handler) GetAuditTrailHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	trail, err := h.store.GetAuditTrail(r.Context(), disasterID)
	if err != nil {
		json.WriteNotFoundError(w, "Disaster not found")
		return
	}

	resp := make([]auditEntryResponse, 0, len(trail))
	for _, entry := range trail {
		resp = append(resp, auditEntryResponse{
			Action:    string(entry.Action),
			ActorID:   entry.ActorID,
			Timestamp: entry.Timestamp,
		})
	}

	json.Write(w, http.StatusOK, resp)
}

// authorizeOwner loads the disaster and enforces the owner-or-admin rule,
// writing the error response itself on denial.
func (h *Handler) authorizeOwner(w http.ResponseWriter, r *http.Request, disasterID string) (domain.Principal, bool) {
	actor := utils.PrincipalFrom(r.Context())
	if actor.IsZero() {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return domain.Principal{}, false
	}

	existing, err := h.store.GetDisaster(r.Context(), disasterID)
	if err != nil {
		json.WriteNotFoundError(w, "Disaster not found")
		return domain.Principal{}, false
	}

	if !utils.CanModify(actor, existing.OwnerID) {
		json.WriteError(w, http.StatusForbidden, errors.New("forbidden"), "Only the owner or an admin may modify this disaster")
		return domain.Principal{}, false
	}

	return actor, true
}

func newPointResponse(p *domain.Point) *pointResponse {
	if p == nil {
		return nil
	}
	return &pointResponse{Lon: p.Lon, Lat: p.Lat}
}

func newReportResponse(rep domain.Report) reportResponse {
	return reportResponse{
		ID:                 rep.ID,
		SubmittedBy:        rep.SubmittedBy,
		Content:            rep.Content,
		ImageURL:           rep.ImageURL,
		VerificationStatus: string(rep.VerificationStatus),
		VerificationNote:   rep.VerificationNote,
		CreatedAt:          rep.CreatedAt,
	}
}

func newResourceResponse(res domain.Resource) resourceResponse {
	return resourceResponse{
		ID:           res.ID,
		Name:         res.Name,
		LocationName: res.LocationName,
		Point:        pointResponse{Lon: res.Point.Lon, Lat: res.Point.Lat},
		Category:     res.Category,
		CreatedAt:    res.CreatedAt,
	}
}

func newDisasterResponse(d *domain.Disaster) disasterResponse {
	reports := make([]reportResponse, 0, len(d.Reports))
	for _, rep := range d.Reports {
		reports = append(reports, newReportResponse(rep))
	}

	resources := make([]resourceResponse, 0, len(d.Resources))
	for _, res := range d.Resources {
		resources = append(resources, newResourceResponse(res))
	}

	return disasterResponse{
		ID:           d.ID,
		Title:        d.Title,
		LocationName: d.LocationName,
		Point:        newPointResponse(d.Point),
		Description:  d.Description,
		Tags:         d.Tags,
		OwnerID:      d.OwnerID,
		CreatedAt:    d.CreatedAt,
		Reports:      reports,
		Resources:    resources,
	}
}

func newDisasterSummaryResponse(d *domain.Disaster) disasterSummaryResponse {
	return disasterSummaryResponse{
		ID:            d.ID,
		Title:         d.Title,
		LocationName:  d.LocationName,
		Point:         newPointResponse(d.Point),
		Tags:          d.Tags,
		OwnerID:       d.OwnerID,
		CreatedAt:     d.CreatedAt,
		ReportCount:   len(d.Reports),
		ResourceCount: len(d.Resources),
	}
}
