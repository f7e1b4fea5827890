package handlers

import (
	"net/http"
	"strconv"

	"github.com/glutenpeek/tracker-service/internal/application/directory"
	"github.com/glutenpeek/tracker-service/internal/transport/http/dto"
	"github.com/glutenpeek/tracker-service/internal/transport/http/middleware"
	"github.com/glutenpeek/tracker-service/internal/transport/http/response"
)

type DirectoryHandler struct {
	svc *directory.Service
}

func NewDirectoryHandler(svc *directory.Service) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// SearchUsers pages the user directory by name; q is an optional prefix
// filter. No identity required.
func (h *DirectoryHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	page, err := h.svc.Search(r.Context(), q.Get("q"), q.Get("cursor"), limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPageResp(page, dto.ToUserResp))
}

// Profile returns the caller's profile with the activity streak embedded.
func (h *DirectoryHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToProfileResp(profile))
}
