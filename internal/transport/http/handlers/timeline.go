package handlers

import (
	"net/http"
	"strconv"

	"github.com/glutenpeek/tracker-service/internal/application/timeline"
	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/transport/http/dto"
	"github.com/glutenpeek/tracker-service/internal/transport/http/middleware"
	"github.com/glutenpeek/tracker-service/internal/transport/http/response"
	"github.com/glutenpeek/tracker-service/internal/transport/http/validate"
)

type TimelineHandler struct {
	svc *timeline.Service
}

func NewTimelineHandler(svc *timeline.Service) *TimelineHandler {
	return &TimelineHandler{svc: svc}
}

// Days returns one bucket per calendar day in [startdate, enddate].
func (h *TimelineHandler) Days(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	buckets, err := h.svc.Aggregate(r.Context(), middleware.UserID(r), q.Get("startdate"), q.Get("enddate"))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.DayBucketResp, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.ToDayBucketResp(b))
	}
	response.Data(w, http.StatusOK, out)
}

func (h *TimelineHandler) RecordScan(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordScanReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	scan, err := h.svc.RecordScan(r.Context(), timeline.RecordScanCmd{
		ActorID:        middleware.UserID(r),
		ProductBarcode: req.ProductBarcode,
		OccurredAt:     req.Date,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToScanResp(scan))
}

func (h *TimelineHandler) ReportSymptoms(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportSymptomsReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	cmd := timeline.ReportSymptomsCmd{
		ActorID:    middleware.UserID(r),
		ScanID:     req.ScanID,
		Severities: domain.SeverityMap(req.Symptoms),
	}
	if req.Date != nil {
		cmd.OccurredAt = *req.Date
	}

	sym, err := h.svc.ReportSymptoms(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToSymptomResp(sym))
}

// RecentScans is the keyset-paginated scan feed, newest first.
func (h *TimelineHandler) RecentScans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	page, err := h.svc.RecentScans(r.Context(), middleware.UserID(r), q.Get("cursor"), limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPageResp(page, dto.ToFeedItemResp))
}
