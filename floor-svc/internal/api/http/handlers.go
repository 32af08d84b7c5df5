package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/service"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const (
	headerRole   = "X-Role"
	headerUserID = "X-User-ID"
)

type Handler struct {
	Orders      service.OrderServiceInterface
	Assignments service.AssignmentServiceInterface
	Tables      service.TableServiceInterface
	validate    *validatorv10.Validate
}

func NewHandler(orderSvc service.OrderServiceInterface, assignSvc service.AssignmentServiceInterface, tableSvc service.TableServiceInterface) *Handler {
	return &Handler{
		Orders:      orderSvc,
		Assignments: assignSvc,
		Tables:      tableSvc,
		validate:    NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/active", h.getActiveOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.updateOrder).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/assign", h.assignOrder).Methods("POST")
	r.HandleFunc("/api/undo/{token}", h.undoAssignment).Methods("POST")
	r.HandleFunc("/api/order-items/{id}/prepared", h.setItemPrepared).Methods("PUT")

	r.HandleFunc("/api/tables", h.getTables).Methods("GET")
	r.HandleFunc("/api/tables", h.saveLayout).Methods("PUT")
	r.HandleFunc("/api/tables/{id}/qrcode", h.getTableQRCode).Methods("GET")
	r.HandleFunc("/api/floor", h.getFloor).Methods("GET")

	r.HandleFunc("/api/views/kitchen", h.getKitchenQueue).Methods("GET")
	r.HandleFunc("/api/views/waiter", h.getWaiterList).Methods("GET")
	r.HandleFunc("/api/views/unassigned", h.getUnassignedQueue).Methods("GET")
}

type updateOrderRequest struct {
	Status         *domain.OrderStatus `json:"status" validate:"omitempty,oneof=PENDING VALIDATED READY PAID"`
	NumberOfPeople *int                `json:"number_of_people" validate:"omitempty,min=1,max=50"`
	MainsStarted   *bool               `json:"mains_started"`
}

func (r updateOrderRequest) fields() int {
	n := 0
	if r.Status != nil {
		n++
	}
	if r.NumberOfPeople != nil {
		n++
	}
	if r.MainsStarted != nil {
		n++
	}
	return n
}

type assignRequest struct {
	TableID string `json:"table_id" validate:"required"`
}

type itemPreparedRequest struct {
	IsPrepared *bool `json:"is_prepared" validate:"required"`
}

type tableRequest struct {
	ID       string            `json:"id"`
	Label    string            `json:"label" validate:"required,max=32"`
	X        int               `json:"x" validate:"min=0"`
	Y        int               `json:"y" validate:"min=0"`
	Shape    domain.TableShape `json:"shape" validate:"required,oneof=RECT ROUND"`
	Capacity int               `json:"capacity" validate:"required,min=1"`
}

type layoutRequest struct {
	Tables []tableRequest `json:"tables" validate:"dive"`
}

func actorFrom(r *http.Request) domain.Actor {
	role := domain.Role(r.Header.Get(headerRole))
	if role == "" {
		role = domain.RoleGuest
	}
	return domain.Actor{ID: r.Header.Get(headerUserID), Role: role}
}

// writeError maps domain errors onto status codes. Anything unknown is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTableOccupied),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrUndoUnavailable),
		errors.Is(err, domain.ErrStaleUndo),
		errors.Is(err, domain.ErrDuplicateLabel):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidOrder),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidTable),
		errors.Is(err, domain.ErrReservedLabel):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Printf("Unhandled error: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "floor-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.NewOrder
	if err := bindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}
	order, err := h.Orders.Create(r.Context(), req, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{Status: domain.OrderStatus(r.URL.Query().Get("status"))}
	if filter.Status != "" && !filter.Status.Valid() {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}
	orders, err := h.Orders.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getActiveOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.ActiveOrder(r.Context(), actorFrom(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// updateOrder changes exactly one field per request, so every PATCH is a
// single versioned commit.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := bindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}
	if n := req.fields(); n == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	} else if n > 1 {
		http.Error(w, "Update one of status, number_of_people or mains_started per request", http.StatusBadRequest)
		return
	}
	if req.MainsStarted != nil && !*req.MainsStarted {
		http.Error(w, "mains_started cannot be reset", http.StatusUnprocessableEntity)
		return
	}

	id := mux.Vars(r)["id"]
	actor := actorFrom(r)
	var (
		order *domain.Order
		err   error
	)
	switch {
	case req.Status != nil:
		order, err = h.Orders.UpdateStatus(r.Context(), id, *req.Status, actor)
	case req.NumberOfPeople != nil:
		order, err = h.Orders.SetNumberOfPeople(r.Context(), id, *req.NumberOfPeople, actor)
	default:
		order, err = h.Orders.StartMains(r.Context(), id, actor)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) assignOrder(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := bindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}
	outcome, err := h.Assignments.AttemptAssign(r.Context(), mux.Vars(r)["id"], req.TableID, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) undoAssignment(w http.ResponseWriter, r *http.Request) {
	order, err := h.Assignments.Undo(r.Context(), mux.Vars(r)["token"], actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) setItemPrepared(w http.ResponseWriter, r *http.Request) {
	var req itemPreparedRequest
	if err := bindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}
	order, err := h.Orders.SetItemPrepared(r.Context(), mux.Vars(r)["id"], *req.IsPrepared, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) saveLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := bindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}
	tables := make([]domain.Table, len(req.Tables))
	for i, t := range req.Tables {
		tables[i] = domain.Table{
			ID:       t.ID,
			Label:    t.Label,
			X:        t.X,
			Y:        t.Y,
			Shape:    t.Shape,
			Capacity: t.Capacity,
		}
	}
	saved, err := h.Tables.SaveLayout(r.Context(), tables, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Tables.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) getFloor(w http.ResponseWriter, r *http.Request) {
	floor, err := h.Tables.Floor(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, floor)
}

func (h *Handler) getKitchenQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Orders.KitchenQueue())
}

func (h *Handler) getWaiterList(w http.ResponseWriter, r *http.Request) {
	orderType := domain.OrderType(r.URL.Query().Get("type"))
	if orderType != "" && !orderType.Valid() {
		http.Error(w, "Invalid order type", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.Orders.WaiterList(orderType))
}

func (h *Handler) getUnassignedQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Orders.UnassignedQueue())
}
