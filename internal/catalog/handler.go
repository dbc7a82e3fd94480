// internal/catalog/handler.go
//
// Shopadmin – Create-product endpoint.
//
// Context
//   POST /api/createProduct accepts the JSON payload the form client emits.
//   The payload was validated client-side, but the endpoint trusts nothing:
//   it re-validates with go-playground/validator tags, including enum
//   membership via oneof, before touching the database.  The response body
//   carries the new row ID, though the form client only inspects the status.
//
//   Note the image field is stored verbatim: a data URI or the literal
//   placeholder.  There is no size or type enforcement, mirroring the
//   advisory-only limit on the picker.
//
//------------------------------------------------------------------------------

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yanizio/shopadmin/internal/logger"
	"github.com/yanizio/shopadmin/internal/product"
)

// Inserter is the slice of Repository the handler needs; tests use fakes.
type Inserter interface {
	Insert(ctx context.Context, p product.Payload) (int64, error)
}

// createProductRequest mirrors product.Payload with validation tags.
type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"required,gte=0.01"`
	Type        string  `json:"type"        validate:"required,oneof=TSHIRT JEANS SHIRT OTHER"`
	Color       string  `json:"color"       validate:"required,oneof=RED BLUE GREEN YELLOW PURPLE ORANGE PINK BROWN"`
	Image       string  `json:"image"       validate:"required"`
}

// Handler serves the catalog API.
type Handler struct {
	repo     Inserter
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewHandler returns a Handler over repo.
func NewHandler(repo Inserter, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.S()
	}
	return &Handler{repo: repo, validate: validator.New(), log: log}
}

// Routes mounts the catalog endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/createProduct", h.create)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed JSON body"})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		fields := map[string]string{}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fields})
		return
	}

	payload := product.Payload{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Type:        product.Type(req.Type),
		Color:       product.Color(req.Color),
		Image:       req.Image,
	}

	id, err := h.repo.Insert(r.Context(), payload)
	if err != nil {
		logger.FromContext(r.Context()).Errorw("product insert failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "storage failure"})
		return
	}

	h.log.Infow("product stored", "id", id, "name", payload.Name)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
