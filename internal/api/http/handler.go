package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/service"
)

// Services holds the engine operations exposed over REST
type Services struct {
	Rental    service.RentalService
	Overdue   service.OverdueService
	Inventory service.InventoryService
	Rules     service.RentalRuleService
}

type Handler struct {
	services *Services
	validate *validator.Validate
	now      service.Clock
}

func NewHandler(services *Services, now service.Clock) *Handler {
	if now == nil {
		now = service.UTCClock
	}
	return &Handler{
		services: services,
		validate: validator.New(),
		now:      now,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/rentals
func (h *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req CreateRentalRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.services.Rental.CreateRental(r.Context(), req.BookID, req.BorrowerID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapDomainRentalToResponse(rental))
}

// GET /api/rentals
func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RentalFilter{Status: domain.RentalStatus(q.Get("status"))}
	var err error
	for _, p := range []struct {
		name string
		dst  *int32
	}{
		{"page", &filter.Page},
		{"pageSize", &filter.PageSize},
		{"bookId", &filter.BookID},
		{"borrowerId", &filter.BorrowerID},
	} {
		if *p.dst, err = queryInt32(q.Get(p.name)); err != nil {
			writeError(w, r, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArgument, p.name, err))
			return
		}
	}

	filter = filter.Normalize()
	rentals, total, err := h.services.Rental.ListRentals(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalsToPage(rentals, total, filter))
}

// GET /api/rentals/{id}
func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.services.Rental.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalToResponse(rental))
}

// DELETE /api/rentals/{id}
func (h *Handler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.services.Rental.DeleteRental(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/rentals/return/{id}
func (h *Handler) ReturnRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.services.Rental.ReturnRental(r.Context(), id, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalToResponse(rental))
}

// PUT /api/rentals/overdue/{id}
func (h *Handler) MarkOverdue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.services.Rental.MarkOverdueByID(r.Context(), id, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalToResponse(rental))
}

// POST /api/rentals/sweep
func (h *Handler) SweepOverdue(w http.ResponseWriter, r *http.Request) {
	updated, err := h.services.Overdue.Sweep(r.Context(), h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SweepResponse{Updated: updated})
}

// GET /api/books/{id}/inventory
func (h *Handler) CheckInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.services.Inventory.CheckInventory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapInventoryReportToResponse(report))
}

// GET /api/rental-rules
func (h *Handler) ListRentalRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.services.Rules.ListRules(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]RentalRuleResponse, 0, len(rules))
	for i := range rules {
		resp = append(resp, MapDomainRuleToResponse(&rules[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/rental-rules/{name}
func (h *Handler) GetRentalRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.services.Rules.GetRule(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRuleToResponse(rule))
}

// PUT /api/rental-rules/{name}
func (h *Handler) PutRentalRule(w http.ResponseWriter, r *http.Request) {
	var req PutRentalRuleRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rule, err := h.services.Rules.PutRule(r.Context(), mux.Vars(r)["name"], req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRuleToResponse(rule))
}

// DELETE /api/rental-rules/{name}
func (h *Handler) DeleteRentalRule(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Rules.DeleteRule(r.Context(), mux.Vars(r)["name"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidArgument, err)
	}
	return h.validate.Struct(dst)
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidArgument, mux.Vars(r)["id"])
	}
	return int32(id), nil
}

func queryInt32(v string) (int32, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}
