package httpx

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/orders-microservice/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/orders-microservice/internal/api-gateway/core/ports"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors/constants"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the order REST API on top of the order service.
type Handler struct {
	orderService ports.OrderService
}

func NewHandler(os ports.OrderService) *Handler {
	return &Handler{orderService: os}
}

// CreateOrder handles POST /orders. An Idempotency-Key or x-idempotency-key
// header makes retries return the first order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "items are required")
		return
	}

	items := make([]entity.CreateOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_item", "product_id and a positive quantity are required")
			return
		}
		if it.Quantity > math.MaxInt32 {
			writeError(w, http.StatusBadRequest, "invalid_item", "quantity is too large")
			return
		}
		items = append(items, entity.CreateOrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	idempKey := r.Header.Get(constants.HeaderXIdempotencyKey)
	if idempKey == "" {
		idempKey = r.Header.Get("Idempotency-Key")
	}

	order, err := h.orderService.CreateOrder(r.Context(), idempKey, items)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "order created", "order_id", order.ID)
	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

// ListOrders handles GET /orders?page=&limit=&status=.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, ok := queryInt(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, q.Get("limit"), "limit")
	if !ok {
		return
	}

	result, err := h.orderService.ListOrders(r.Context(), entity.ListQuery{
		Page:   page,
		Limit:  limit,
		Status: q.Get("status"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := OrderPageResponse{
		Data: make([]OrderResponse, len(result.Data)),
		Meta: PageMetaDTO{
			Page:       result.Meta.Page,
			Limit:      result.Meta.Limit,
			TotalPages: result.Meta.TotalPages,
			TotalItems: result.Meta.TotalItems,
		},
	}
	for i := range result.Data {
		resp.Data[i] = mapOrderToResponse(&result.Data[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetOrderByID handles GET /orders/{id}.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// ChangeOrderStatus handles PATCH /orders/{id} with {"status": "..."}.
func (h *Handler) ChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.orderService.ChangeOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func mapOrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Paid:        order.Paid,
		Items:       mapItems(order.Items),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func mapItems(items []entity.OrderItem) []OrderItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]OrderItemResponse, len(items))
	for i, it := range items {
		out[i] = OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return out
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// queryInt parses an optional 32-bit integer query parameter; empty means
// zero.
func queryInt(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "invalid_query", name+" must be a positive 32-bit integer")
		return 0, false
	}
	return int(n), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
