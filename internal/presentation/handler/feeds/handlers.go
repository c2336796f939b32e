package feeds

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/json"
	"github.com/cindermoth/reliefgrid/internal/persistence/store"
)

type Handler struct {
	store    *store.Store
	upstream domain.UpstreamClient
}

// NewHandler wires the feed endpoints. Every provider call goes through the
// cached gateway, so repeated dashboard queries cost one upstream round trip
// per TTL.
func NewHandler(store *store.Store, upstream domain.UpstreamClient) *Handler {
	return &Handler{
		store:    store,
		upstream: upstream,
	}
}

// SearchSocialHandler godoc
// @Summary      Search social feeds for a disaster
// @Description  Queries the social feed provider scoped to one disaster. Answers are cached; identical queries within the TTL never hit the provider twice.
// @Tags         feeds
// @Produce      json
// @Param        disasterID path string true "Disaster ID"
// @Param        q query string true "Search query"
// @Success      200 {object} socialSearchResponse "Matching posts, or found=false when the provider had none"
// @Failure      400 {object} json.ErrorResponse "Missing query"
// @Failure      404 {object} json.ErrorResponse "Disaster not found"
// @Failure      502 {object} json.ErrorResponse "Feed provider unavailable"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /disasters/{disasterID}/social [get]
func (h *Handler) SearchSocialHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := chi.URLParam(r, "disasterID")
	if disasterID == "" {
		json.WriteValidationError(w, errors.New("disaster ID is missing"))
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		json.WriteValidationError(w, errors.New("q query parameter is required"))
		return
	}

	if _, err := h.store.GetDisaster(r.Context(), disasterID); err != nil {
		json.WriteNotFoundError(w, "Disaster not found")
		return
	}

	result, err := h.upstream.SearchSocial(r.Context(), disasterID, query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			json.WriteUpstreamError(w, err)
		default:
			log.Printf("Social search failed for disaster %s: %v", disasterID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	resp := socialSearchResponse{
		Found: result.Found,
		Posts: make([]socialPostResponse, 0, len(result.Posts)),
	}
	for _, post := range result.Posts {
		resp.Posts = append(resp.Posts, socialPostResponse{
			ID:       post.ID,
			Author:   post.Author,
			Text:     post.Text,
			PostedAt: post.PostedAt,
		})
	}

	json.Write(w, http.StatusOK, resp)
}

// GetBulletinsHandler godoc
// @Summary      Fetch official bulletins
// @Description  Returns the latest advisories from one official source (nws, fema, usgs, redcross). Cached per source.
// @Tags         feeds
// @Produce      json
// @Param        source query string true "Bulletin source identifier"
// @Success      200 {object} bulletinsResponse "Advisories, or found=false for an unknown source"
// @Failure      400 {object} json.ErrorResponse "Missing source"
// @Failure      502 {object} json.ErrorResponse "Bulletin provider unavailable"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /updates [get]
func (h *Handler) GetBulletinsHandler(w http.ResponseWriter, r *http.Request) {
	source := strings.TrimSpace(r.URL.Query().Get("source"))
	if source == "" {
		json.WriteValidationError(w, errors.New("source query parameter is required"))
		return
	}

	result, err := h.upstream.FetchBulletins(r.Context(), source)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			json.WriteUpstreamError(w, err)
		default:
			log.Printf("Bulletin fetch failed for source %s: %v", source, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	resp := bulletinsResponse{
		Found:     result.Found,
		Bulletins: make([]bulletinResponse, 0, len(result.Bulletins)),
	}
	for _, b := range result.Bulletins {
		resp.Bulletins = append(resp.Bulletins, bulletinResponse{
			ID:       b.ID,
			Source:   b.Source,
			Title:    b.Title,
			Body:     b.Body,
			IssuedAt: b.IssuedAt,
		})
	}

	json.Write(w, http.StatusOK, resp)
}

// GeocodeHandler godoc
// @Summary      Extract and geocode a place name from text
// @Description  Runs location extraction over free text, then geocodes the first recognized place name. Both lookups are cached.
// @Tags         feeds
// @Accept       json
// @Produce      json
// @Param        request body geocodeRequest true "Text to scan"
// @Success      200 {object} geocodeResponse "Extraction outcome"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      502 {object} json.ErrorResponse "Provider unavailable"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /geocode [post]
func (h *Handler) GeocodeHandler(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		json.WriteValidationError(w, errors.New("text is required"))
		return
	}

	extracted, err := h.upstream.ExtractLocation(r.Context(), req.Text)
	if err != nil {
		h.writeProviderError(w, "location extraction", err)
		return
	}

	if !extracted.Found {
		json.Write(w, http.StatusOK, geocodeResponse{Found: false})
		return
	}

	geocoded, err := h.upstream.Geocode(r.Context(), extracted.Location)
	if err != nil {
		h.writeProviderError(w, "geocoding", err)
		return
	}

	resp := geocodeResponse{
		Found:    true,
		Location: extracted.Location,
	}
	if geocoded.Found {
		resp.Point = &pointResponse{Lon: geocoded.Point.Lon, Lat: geocoded.Point.Lat}
	}

	json.Write(w, http.StatusOK, resp)
}

func (h *Handler) writeProviderError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		json.WriteUpstreamError(w, err)
		return
	}

	log.Printf("%s failed: %v", op, err)
	json.WriteInternalError(w, err)
}
