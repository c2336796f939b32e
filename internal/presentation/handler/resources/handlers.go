package resources

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

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

// CreateResourceHandler godoc
// @Summary      Register a resource
// @Description  Geocodes the location name and stores the resource. Unlike disasters, a resource is refused entirely when the name does not resolve to a usable point: nothing is stored, audited, or indexed.
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting principal"
// @Param        disasterID path string true "Disaster ID"
// @Param        request body createResourceRequest true "Resource details"
// @Success      201 {object} resourceResponse "Resource created"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      401 {object} json.ErrorResponse "Unknown or missing principal"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Failure      422 {object} json.ErrorResponse "Location name has no resolvable point"
// @Failure      502 {object} json.ErrorResponse "Geocoding provider unavailable"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /disasters/{disasterID}/resources [post]
func (h *Handler) CreateResourceHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	var req createResourceRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	actor := utils.PrincipalFrom(r.Context())
	if actor.IsZero() {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	resource, err := h.store.CreateResource(r.Context(), actor, disasterID, store.CreateResourceInput{
		Name:         req.Name,
		LocationName: req.LocationName,
		Category:     req.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDisasterNotFound):
			json.WriteNotFoundError(w, "Disaster not found")
		case errors.Is(err, domain.ErrInvalidInput):
			json.WriteError(w, http.StatusBadRequest, err, "Invalid resource payload")
		case errors.Is(err, domain.ErrGeocodingFailed):
			json.WriteError(w, http.StatusUnprocessableEntity, err, "Location name could not be resolved to a point")
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			json.WriteUpstreamError(w, err)
		default:
			log.Printf("Failed to create resource on disaster %s: %v", disasterID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusCreated, newResourceResponse(*resource))
}

// ListResourcesHandler godoc
// @Summary      List a disaster's resources
// @Tags         resources
// @Produce      json
// @Param        disasterID path string true "Disaster ID"
// @Success      200 {array} resourceResponse "Resources in creation order"
// @Failure      400 {object} json.ErrorResponse "Missing disaster ID"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Router       /disasters/{disasterID}/resources [get]
func (h *Handler) ListResourcesHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	listed, err := h.store.ListResources(r.Context(), disasterID)
	if err != nil {
		json.WriteNotFoundError(w, "Disaster not found")
		return
	}

	resp := make([]resourceResponse, 0, len(listed))
	for _, res := range listed {
		resp = append(resp, newResourceResponse(res))
	}

	json.Write(w, http.StatusOK, resp)
}

// DeleteResourceHandler godoc
// @Summary      Delete a resource
// @Tags         resources
// @Produce      json
// @Param        X-User-ID header string true "Acting principal"
// @Param        disasterID path string true "Disaster ID"
// @Param        resourceID path string true "Resource ID"
// @Success      204 "Resource deleted"
// @Failure      400 {object} json.ErrorResponse "Missing path parameter"
// @Failure      401 {object} json.ErrorResponse "Unknown or missing principal"
// @Failure      404 {object} json.ErrorResponse "Disaster or resource not found"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /disasters/{disasterID}/resources/{resourceID} [delete]
func (h *Handler) DeleteResourceHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	resourceID := chi.URLParam(r, "resourceID")
	if disasterID == "" || resourceID == "" {
		json.WriteValidationError(w, errors.New("disaster ID and resource ID are required"))
		return
	}

	actor := utils.PrincipalFrom(r.Context())
	if actor.IsZero() {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	if err := h.store.DeleteResource(r.Context(), actor, disasterID, resourceID); err != nil {
		switch {
		case errors.Is(err, domain.ErrDisasterNotFound):
			json.WriteNotFoundError(w, "Disaster not found")
		case errors.Is(err, domain.ErrResourceNotFound):
			json.WriteNotFoundError(w, "Resource not found")
		default:
			log.Printf("Failed to delete resource %s: %v", resourceID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchNearbyHandler godoc
// @Summary      Find resources near a point
// @Description  Returns the disaster's resources within the radius, sorted nearest first. Distance is great-circle meters.
// @Tags         resources
// @Produce      json
// @Param        disasterID path string true "Disaster ID"
// @Param        lon query number true "Center longitude, -180 to 180"
// @Param        lat query number true "Center latitude, -90 to 90"
// @Param        radius query number true "Search radius in meters, positive"
// @Param        category query string false "Only resources in this category (case-insensitive)"
// @Success      200 {array} nearbyResourceResponse "Matches, nearest first"
// @Failure      400 {object} json.ErrorResponse "Missing or invalid query parameters"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Router       /disasters/{disasterID}/resources/nearby [get]
func (h *Handler) SearchNearbyHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	lon, err := parseCoordinate(r, "lon", -180, 180)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	lat, err := parseCoordinate(r, "lat", -90, 90)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	radius, err := parseRadius(r)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	category := r.URL.Query().Get("category")

	matches, err := h.store.SearchResourcesNearby(r.Context(), disasterID, domain.Point{Lon: lon, Lat: lat}, radius, category)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDisasterNotFound):
			json.WriteNotFoundError(w, "Disaster not found")
		case errors.Is(err, domain.ErrInvalidInput):
			json.WriteError(w, http.StatusBadRequest, err, "Invalid search parameters")
		default:
			log.Printf("Nearby search failed for disaster %s: %v", disasterID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	resp := make([]nearbyResourceResponse, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, nearbyResourceResponse{
			resourceResponse: newResourceResponse(m.Resource),
			DistanceMeters:   m.DistanceMeters,
		})
	}

	json.Write(w, http.StatusOK, resp)
}

func parseCoordinate(r *http.Request, name string, min, max float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be between %g and %g", name, min, max)
	}

	return v, nil
}

func parseRadius(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("radius")
	if raw == "" {
		return 0, errors.New("radius query parameter is required")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("radius must be a number")
	}
	if v <= 0 {
		return 0, errors.New("radius must be a positive number of meters")
	}

	return v, nil
}

func newResourceResponse(res domain.Resource) resourceResponse {
	return resourceResponse{
		ID:           res.ID,
		DisasterID:   res.DisasterID,
		Name:         res.Name,
		LocationName: res.LocationName,
		Point:        pointResponse{Lon: res.Point.Lon, Lat: res.Point.Lat},
		Category:     res.Category,
		CreatedAt:    res.CreatedAt,
	}
}
