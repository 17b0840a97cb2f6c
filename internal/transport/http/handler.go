package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/asquebay/order-dashboard/internal/model"
	"github.com/asquebay/order-dashboard/internal/service"
)

// OrderSearcher определяет интерфейс для сервиса поиска заказов
// Это позволяет хэндлеру не зависеть от конкретной реализации сервиса
type OrderSearcher interface {
	Search(ctx context.Context, q model.SearchQuery) (service.SearchResult, error)
	OrderDetails(ctx context.Context, id string) (service.OrderView, error)
	MemberOptions(memberType model.MemberType) []model.Member
	MaterialOptions(ctx context.Context) ([]model.Material, error)
	ReloadOrders(ctx context.Context) error
}

// DashboardProvider отдаёт сводную статистику
type DashboardProvider interface {
	Stats(ctx context.Context) (service.DashboardStats, error)
}

// Handler обрабатывает HTTP-запросы
type Handler struct {
	orders    OrderSearcher
	dashboard DashboardProvider
	log       *slog.Logger
	mux       *http.ServeMux
}

// NewHandler создает новый экземпляр Handler
func NewHandler(orders OrderSearcher, dashboard DashboardProvider, log *slog.Logger) *Handler {
	h := &Handler{
		orders:    orders,
		dashboard: dashboard,
		log:       log,
		mux:       http.NewServeMux(),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP делает Handler совместимым с http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes регистрирует все эндпоинты
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /api/dashboard", h.getDashboard)
	h.mux.HandleFunc("GET /api/orders", h.searchOrders)
	h.mux.HandleFunc("GET /api/orders/{order_id}", h.getOrderDetails)
	h.mux.HandleFunc("GET /api/options/members", h.getMemberOptions)
	h.mux.HandleFunc("GET /api/options/materials", h.getMaterialOptions)
	h.mux.HandleFunc("POST /api/reload", h.reloadOrders)

	// роутинг для статики (HTML/JS/CSS)
	fileServer := http.FileServer(http.Dir("./web/"))
	h.mux.Handle("/", http.StripPrefix("/", fileServer))
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) searchOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := model.SearchQuery{
		Start:    query.Get("start"),
		End:      query.Get("end"),
		Category: query.Get("category"),
		Value:    query.Get("value"),
		Term:     query.Get("q"),
	}

	result, err := h.orders.Search(r.Context(), q)
	if err != nil {
		// клиент ушёл (например, набрал новый терм), отвечать некому
		if errors.Is(err, context.Canceled) {
			return
		}
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handler) getOrderDetails(w http.ResponseWriter, r *http.Request) {
	// извлекаем order_id из URL
	id := r.PathValue("order_id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	view, err := h.orders.OrderDetails(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

func (h *Handler) getMemberOptions(w http.ResponseWriter, r *http.Request) {
	memberType := model.MemberType(r.URL.Query().Get("type"))
	if memberType != model.MemberTypeClient && memberType != model.MemberTypeActive {
		h.respondError(w, http.StatusBadRequest, "type must be CLIENT or ACTIF")
		return
	}

	members := h.orders.MemberOptions(memberType)
	if members == nil {
		members = []model.Member{}
	}
	h.respondJSON(w, http.StatusOK, members)
}

func (h *Handler) getMaterialOptions(w http.ResponseWriter, r *http.Request) {
	materials, err := h.orders.MaterialOptions(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if materials == nil {
		materials = []model.Material{}
	}
	h.respondJSON(w, http.StatusOK, materials)
}

func (h *Handler) reloadOrders(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.ReloadOrders(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondServiceError переводит ошибки сервиса в HTTP-статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		h.respondError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrInvalidQuery), errors.Is(err, service.ErrInvalidCategory):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotLoaded):
		h.respondError(w, http.StatusServiceUnavailable, "data is still loading, please retry")
	case errors.Is(err, service.ErrBackendUnavailable):
		h.log.Error("backend unavailable", slog.String("error", err.Error()))
		h.respondError(w, http.StatusBadGateway, "failed to load data, please retry later")
	default:
		h.log.Error("internal server error", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to marshal JSON response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(response)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
