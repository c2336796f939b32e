package reports

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
	store    *store.Store
	upstream domain.UpstreamClient
}

// NewHandler wires the report endpoints. The upstream client is the cached
// gateway; verification results for the same image URL are served from the
// response cache on repeat requests.
func NewHandler(store *store.Store, upstream domain.UpstreamClient) *Handler {
	return &Handler{
		store:    store,
		upstream: upstream,
	}
}

// CreateReportHandler godoc
// @Summary      Submit a field report
// @Description  Attaches a report to a disaster. The report starts in verification status "pending".
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting principal"
// @Param        disasterID path string true "Disaster ID"
// @Param        request body createReportRequest true "Report details"
// @Success      201 {object} reportResponse "Report created"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      401 {object} json.ErrorResponse "Unknown or missing principal"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /disasters/{disasterID}/reports [post]
func (h *Handler) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	var req createReportRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	actor := utils.PrincipalFrom(r.Context())
	if actor.IsZero() {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	report, err := h.store.CreateReport(r.Context(), actor, disasterID, store.CreateReportInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDisasterNotFound):
			json.WriteNotFoundError(w, "Disaster not found")
		case errors.Is(err, domain.ErrInvalidInput):
			json.WriteError(w, http.StatusBadRequest, err, "Invalid report payload")
		default:
			log.Printf("Failed to create report on disaster %s: %v", disasterID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusCreated, newReportResponse(*report))
}

// ListReportsHandler godoc
// @Summary      List a disaster's reports
// @Tags         reports
// @Produce      json
// @Param        disasterID path string true "Disaster ID"
// @Success      200 {array} reportResponse "Reports in submission order"
// @Failure      400 {object} json.ErrorResponse "Missing disaster ID"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Router       /disasters/{disasterID}/reports [get]
func (h *Handler) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	reports, err := h.store.ListReports(r.Context(), disasterID)
	if err != nil {
		json.WriteNotFoundError(w, "Disaster not found")
		return
	}

	resp := make([]reportResponse, 0, len(reports))
	for _, rep := range reports {
		resp = append(resp, newReportResponse(rep))
	}

	json.Write(w, http.StatusOK, resp)
}

// VerifyReportHandler godoc
// @Summary      Run image verification on a report
// @Description  Sends the report's image through the verification provider and re-evaluates the verification status from the verdict. A report without an image becomes "unverified". Provider failure leaves the report untouched.
// @Tags         reports
// @Produce      json
// @Param        X-User-ID header string true "Acting principal"
// @Param        reportID path string true "Report ID"
// @Success      200 {object} reportResponse "Report with its new verification status"
// @Failure      400 {object} json.ErrorResponse "Missing report ID"
// @Failure      401 {object} json.ErrorResponse "Unknown or missing principal"
// @Failure      404 {object} json.ErrorResponse "Report not found"
// @Failure      502 {object} json.ErrorResponse "Verification provider unavailable"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /reports/{reportID}/verify [post]
func (h *Handler) VerifyReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	if reportID == "" {
		json.WriteValidationError(w, errors.New("report ID is missing"))
		return
	}

	actor := utils.PrincipalFrom(r.Context())
	if actor.IsZero() {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	report, err := h.store.GetReport(r.Context(), reportID)
	if err != nil {
		json.WriteNotFoundError(w, "Report not found")
		return
	}

	// An empty image URL is a no-data verdict from the provider's point of
	// view; the store maps it to "unverified" with an explanatory note.
	result, err := h.upstream.VerifyImage(r.Context(), report.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			json.WriteUpstreamError(w, err)
		default:
			log.Printf("Image verification failed for report %s: %v", reportID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	updated, err := h.store.UpdateReportVerification(r.Context(), actor, reportID, result)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReportNotFound), errors.Is(err, domain.ErrDisasterNotFound):
			json.WriteNotFoundError(w, "Report not found")
		case errors.Is(err, domain.ErrInvalidInput):
			json.WriteError(w, http.StatusBadRequest, err, "Unrecognized verification verdict")
		default:
			log.Printf("Failed to record verification for report %s: %v", reportID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, newReportResponse(*updated))
}

func newReportResponse(rep domain.Report) reportResponse {
	return reportResponse{
		ID:                 rep.ID,
		DisasterID:         rep.DisasterID,
		SubmittedBy:        rep.SubmittedBy,
		Content:            rep.Content,
		ImageURL:           rep.ImageURL,
		VerificationStatus: string(rep.VerificationStatus),
		VerificationNote:   rep.VerificationNote,
		CreatedAt:          rep.CreatedAt,
	}
}
