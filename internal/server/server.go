// Package server exposes a warehouse over a JSON HTTP API.
//
// Routes:
//
//	GET  /locations                               locations with product counts
//	GET  /locations/{id}/products                 products in SKU order
//	GET  /locations/{id}/products/{sku}           one product
//	POST /locations/{id}/products/{sku}/stock     {"delta": n}, n<0 removes
//	GET  /routes?from=&to=                        cheapest route
//	GET  /movements                               stock ledger, oldest first
//
// Errors are returned as {"code": "...", "message": "..."} with the status
// derived from the pkg/errors code. A single read-write lock guards the
// warehouse: reads share it, stock movements take it exclusively.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/inventory"
	"github.com/matzehuels/shelfgraph/pkg/observability"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// Server serves one warehouse.
type Server struct {
	mu     sync.RWMutex
	svc    *warehouse.Service
	logger *log.Logger
}

// New creates a server for svc. A nil logger uses log.Default().
func New(svc *warehouse.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// Handler returns the HTTP handler with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/locations", s.listLocations)
	r.Route("/locations/{id}/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Get("/{sku}", s.getProduct)
		r.Post("/{sku}/stock", s.moveStock)
	})
	r.Get("/routes", s.route)
	r.Get("/movements", s.listMovements)
	return r
}

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), d)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", d)
	})
}

// =============================================================================
// Wire Types
// =============================================================================

type locationJSON struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Products int    `json:"products"`
	Units    int    `json:"units"`
}

type productJSON struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type stockRequest struct {
	Delta int `json:"delta"`
}

type movementJSON struct {
	ID       string    `json:"id"`
	Location int       `json:"location"`
	SKU      string    `json:"sku"`
	Delta    int       `json:"delta"`
	Kind     string    `json:"kind"`
	At       time.Time `json:"at"`
	Error    string    `json:"error,omitempty"`
}

type stockResponse struct {
	Movement movementJSON `json:"movement"`
	Product  productJSON  `json:"product"`
}

type routeJSON struct {
	Stops    []int   `json:"stops"`
	Distance float64 `json:"distance"`
}

type errorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toProductJSON(p *inventory.Product) productJSON {
	return productJSON{SKU: p.SKU(), Name: p.Name(), Quantity: p.Quantity()}
}

func toMovementJSON(m warehouse.Movement) movementJSON {
	out := movementJSON{
		ID:       m.ID.String(),
		Location: int(m.Location),
		SKU:      m.SKU,
		Delta:    m.Delta,
		Kind:     m.Kind.String(),
		At:       m.At,
	}
	if m.Err != nil {
		out.Error = errors.UserMessage(m.Err)
	}
	return out
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locs := s.svc.Warehouse().Locations()
	out := make([]locationJSON, len(locs))
	for i, l := range locs {
		out[i] = locationJSON{
			ID:       int(l.ID),
			Label:    l.Label,
			Kind:     l.Kind.String(),
			Products: l.Stock.Len(),
			Units:    l.Stock.TotalUnits(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	id, err := locationParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.svc.Warehouse().Location(id)
	if !ok {
		writeError(w, warehouse.Coded(warehouse.ErrUnknownLocation))
		return
	}
	out := make([]productJSON, 0, l.Stock.Len())
	for p := range l.Stock.Products() {
		out = append(out, toProductJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := locationParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.svc.Product(id, chi.URLParam(r, "sku"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(p))
}

func (s *Server) moveStock(w http.ResponseWriter, r *http.Request) {
	id, err := locationParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req stockRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid stock request"))
		return
	}
	if req.Delta == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "delta must be non-zero"))
		return
	}
	sku := chi.URLParam(r, "sku")

	s.mu.Lock()
	defer s.mu.Unlock()

	var m warehouse.Movement
	if req.Delta > 0 {
		m, err = s.svc.AddStock(r.Context(), id, sku, req.Delta)
	} else {
		m, err = s.svc.RemoveStock(r.Context(), id, sku, -req.Delta)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := s.svc.Product(id, sku)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stockResponse{Movement: toMovementJSON(m), Product: toProductJSON(p)})
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseID(q.Get("from"))
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseID(q.Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, err := s.svc.Route(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	out := routeJSON{Stops: make([]int, len(rt.Stops)), Distance: rt.Distance}
	for i, id := range rt.Stops {
		out.Stops[i] = int(id)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listMovements(w http.ResponseWriter, r *http.Request) {
	ms := s.svc.Ledger().Movements()
	out := make([]movementJSON, len(ms))
	for i, m := range ms {
		out[i] = toMovementJSON(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Helpers
// =============================================================================

func locationParam(r *http.Request) (warehouse.LocationID, error) {
	return parseID(chi.URLParam(r, "id"))
}

func parseID(s string) (warehouse.LocationID, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid location id %q", s)
	}
	return warehouse.LocationID(id), nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInsufficientStock:
		return http.StatusConflict
	case errors.ErrCodeNoRoute:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidOrder:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(warehouse.Coded(err))
	writeJSON(w, statusFor(code), errorJSON{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
