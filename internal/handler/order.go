package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"smoothies/internal/model"
	"smoothies/internal/service"
)

const maxRequestBody = 16 << 10

type orderRequest struct {
	Fruits      []string `json:"fruits"`
	NameOnOrder string   `json:"name_on_order"`
}

type orderResponse struct {
	*model.Order
	Message string `json:"message"`
}

// CreateOrderHandler writes one order per request: 201 on success, 422 when a
// precondition fails, 500 when the insert fails.
func CreateOrderHandler(catalogs service.CatalogLoader, orders *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderRequest
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

		order, err := orders.Submit(r.Context(), sel, service.SanitizeName(req.NameOnOrder))
		if err != nil {
			switch {
			case service.IsPrecondition(err):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			default:
				logger.Error("order create failed", zap.Error(err))
				http.Error(w, "order submission failed", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, orderResponse{Order: order, Message: order.Confirmation()}, logger)
	}
}

func ListOrdersHandler(orders *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > 500 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		pending := r.URL.Query().Get("pending") == "true"

		list, err := orders.List(r.Context(), pending, limit)
		if err != nil {
			logger.Error("order list failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(list) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, list, logger)
	}
}

func FillOrderHandler(orders *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		if err := orders.MarkFilled(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				logger.Error("order fill failed", zap.Int64("order_uid", id), zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// selectionFrom validates names against the catalog the same way the form does.
func selectionFrom(catalog *model.Catalog, names []string) (model.Selection, error) {
	for _, name := range names {
		if !catalog.Contains(name) {
			return model.Selection{}, &service.FruitError{Fruit: name, Err: service.ErrUnknownFruit}
		}
	}
	return model.NewSelection(names...)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response failed", zap.Error(err))
	}
}
