package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/stockkeeper/internal/core/domain"
)

const requestIDHeader = "X-Request-ID"

type HTTPHandler struct {
	inventory        *LockedInventory
	defaultThreshold int
	logger           *zap.Logger
}

type StockHTTPRequest struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type StockHTTPResponse struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type ReportHTTPResponse struct {
	Items []domain.StockLevel `json:"items"`
}

type LowStockHTTPResponse struct {
	Threshold int      `json:"threshold"`
	Items     []string `json:"items"`
}

type MessageHTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewHTTPHandler(inventory *LockedInventory, defaultThreshold int, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{inventory: inventory, defaultThreshold: defaultThreshold, logger: logger}
}

// Routes returns the API mux wrapped with request ID tagging. Single items
// live under /items/ so that no item name can collide with another route.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/inventory", h.Report)
	mux.HandleFunc("GET /api/inventory/low", h.LowStock)
	mux.HandleFunc("GET /api/inventory/journal", h.Journal)
	mux.HandleFunc("GET /api/inventory/items/{item}", h.Get)
	mux.HandleFunc("POST /api/inventory/add", h.Add)
	mux.HandleFunc("POST /api/inventory/remove", h.Remove)
	mux.HandleFunc("POST /api/inventory/save", h.Save)
	return withRequestID(mux)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStockRequest(w, r)
	if !ok {
		return
	}

	qty, err := h.inventory.Add(req.Item, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{Item: req.Item, Quantity: qty})
}

func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStockRequest(w, r)
	if !ok {
		return
	}

	qty, err := h.inventory.Remove(req.Item, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{Item: req.Item, Quantity: qty})
}

func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	item := r.PathValue("item")
	qty, err := h.inventory.Quantity(item)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{Item: item, Quantity: qty})
}

func (h *HTTPHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := h.defaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, MessageHTTPResponse{
				Success: false,
				Message: "threshold must be an integer",
			})
			return
		}
		threshold = n
	}

	writeJSON(w, http.StatusOK, LowStockHTTPResponse{
		Threshold: threshold,
		Items:     h.inventory.LowStock(threshold),
	})
}

func (h *HTTPHandler) Report(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ReportHTTPResponse{Items: h.inventory.Report()})
}

func (h *HTTPHandler) Journal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"entries": h.inventory.Journal()})
}

func (h *HTTPHandler) Save(w http.ResponseWriter, r *http.Request) {
	n, err := h.inventory.Save(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageHTTPResponse{
		Success: true,
		Message: "saved " + strconv.Itoa(n) + " items",
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) decodeStockRequest(w http.ResponseWriter, r *http.Request) (StockHTTPRequest, bool) {
	var req StockHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return req, false
	}
	return req, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	if errors.Is(err, domain.ErrInvalidArgument) {
		status = http.StatusBadRequest
		message = err.Error()
	} else if errors.Is(err, domain.ErrNotFound) {
		status = http.StatusNotFound
		message = err.Error()
	} else {
		h.logger.Error("request failed",
			zap.String("request_id", w.Header().Get(requestIDHeader)),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	writeJSON(w, status, MessageHTTPResponse{
		Success: false,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
