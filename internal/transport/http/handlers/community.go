package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glutenpeek/tracker-service/internal/application/community"
	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/transport/http/dto"
	"github.com/glutenpeek/tracker-service/internal/transport/http/response"
	"github.com/glutenpeek/tracker-service/internal/transport/http/validate"
)

type CommunityHandler struct {
	svc *community.Service
}

func NewCommunityHandler(svc *community.Service) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

// Feed pages all posts, newest first.
func (h *CommunityHandler) Feed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	page, err := h.svc.Feed(r.Context(), q.Get("cursor"), limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPageResp(page, dto.ToPostResp))
}

func (h *CommunityHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "post_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"post_id": "must be uuid",
		}))
		return
	}

	post, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPostResp(post))
}
