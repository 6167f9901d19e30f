package handler

import (
	"net/http"

	"go.uber.org/zap"

	"smoothies/internal/service"
)

type lookupRequest struct {
	Fruits []string `json:"fruits"`
}

type lookupResponse struct {
	Ingredients string               `json:"ingredients"`
	Items       []service.ItemResult `json:"items"`
}

func ListFruitsHandler(catalogs service.CatalogLoader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := catalogs.Load(r.Context())
		if err != nil {
			logger.Error("fruit options load failed", zap.Error(err))
			http.Error(w, "fruit options are unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, catalog.Options(), logger)
	}
}

// LookupHandler runs the nutrition lookups for a selection. Per-fruit
// failures are reported inside the 200 response.
func LookupHandler(catalogs service.CatalogLoader, enricher *service.Enricher, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req lookupRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		catalog, err := catalogs.Load(r.Context())
		if err != nil {
			logger.Error("fruit options load failed", zap.Error(err))
			http.Error(w, "fruit options are unavailable", http.StatusServiceUnavailable)
			return
		}

		sel, err := selectionFrom(catalog, req.Fruits)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writeJSON(w, http.StatusOK, lookupResponse{
			Ingredients: sel.Ingredients(),
			Items:       enricher.Enrich(r.Context(), catalog, sel),
		}, logger)
	}
}
