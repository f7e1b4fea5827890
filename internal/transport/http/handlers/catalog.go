package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glutenpeek/tracker-service/internal/application/catalog"
	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/transport/http/dto"
	"github.com/glutenpeek/tracker-service/internal/transport/http/middleware"
	"github.com/glutenpeek/tracker-service/internal/transport/http/response"
)

type CatalogHandler struct {
	svc *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// SearchProducts pages the catalog by name; q is an optional prefix filter.
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	page, err := h.svc.SearchProducts(r.Context(), q.Get("q"), q.Get("cursor"), limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPageResp(page, dto.ToProductItemResp))
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "barcode")
	barcode, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || barcode <= 0 {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"barcode": "must be a positive integer",
		}))
		return
	}

	view, err := h.svc.GetProduct(r.Context(), barcode)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToProductResp(view))
}

// ListClaims pages the caller's claims, newest first.
func (h *CatalogHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	page, err := h.svc.ListClaims(r.Context(), middleware.UserID(r), q.Get("cursor"), limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPageResp(page, dto.ToClaimResp))
}
