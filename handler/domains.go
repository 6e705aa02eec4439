package handler

import (
	"net/http"

	"github.com/coastlabs/coast-crawler/common/db"
	"github.com/coastlabs/coast-crawler/common/models"
	"github.com/coastlabs/coast-crawler/common/services"
	"github.com/coastlabs/coast-crawler/common/utils"
	"github.com/coastlabs/coast-crawler/repository"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// DomainHandler exposes the registered domains and their frontier progress
type DomainHandler struct {
	store  *services.FrontierStore
	router *chi.Mux
}

func NewDomainHandler(database *db.DB) *DomainHandler {
	h := &DomainHandler{
		store: services.NewFrontierStore(database),
	}

	r := chi.NewRouter()
	r.Get("/", h.handleListDomains)
	r.Get("/{host}", h.handleGetDomain)

	h.router = r
	return h
}

func (h *DomainHandler) Router() *chi.Mux {
	return h.router
}

func (h *DomainHandler) handleListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.store.ListDomains(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list domains")
		utils.WriteError(w, http.StatusInternalServerError, "failed to list domains")
		return
	}

	response := lo.Map(domains, func(d repository.Domain, _ int) models.DomainResponse {
		return toDomainResponse(d, nil)
	})
	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *DomainHandler) handleGetDomain(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host")

	maybeDomain, err := h.store.GetDomain(r.Context(), host)
	if err != nil {
		log.Error().Str("host", host).Err(err).Msg("Failed to get domain")
		utils.WriteError(w, http.StatusInternalServerError, "failed to get domain")
		return
	}

	domain, ok := maybeDomain.Get()
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "domain not registered")
		return
	}

	stats, err := h.store.Stats(r.Context(), host)
	if err != nil {
		log.Error().Str("host", host).Err(err).Msg("Failed to get domain stats")
		utils.WriteError(w, http.StatusInternalServerError, "failed to get domain stats")
		return
	}

	utils.WriteJSON(w, http.StatusOK, toDomainResponse(domain, &models.DomainStats{
		Pending: stats.Pending,
		Crawled: stats.Crawled,
		Blocked: stats.Blocked,
		Pages:   stats.Pages,
	}))
}

func toDomainResponse(d repository.Domain, stats *models.DomainStats) models.DomainResponse {
	return models.DomainResponse{
		Host:      d.Host,
		Status:    models.DomainStatus(d.Status).String(),
		RootUrl:   d.RootUrl,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Stats:     stats,
	}
}
