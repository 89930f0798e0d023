package inbound

import (
	"encoding/json"
	"strconv"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/announcement/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListAnnouncements returns announcements visible to the caller.
// @Summary List announcements
// @Description Returns published announcements scoped to the caller's track and cohorts.
// @Tags Announcement
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Pagination limit"
// @Param offset query int false "Pagination offset"
// @Success 200 {object} router.successResponse{data=AnnouncementsResponse} "Announcement list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/announcements [get]
func (h *HTTPEndpoint) ListAnnouncements(r *router.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}

	items, err := h.uc.ListAnnouncements(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return announcementsResponse(items), nil
}

// GetAnnouncement returns one announcement.
// @Summary Get announcement
// @Description Returns a single announcement by id.
// @Tags Announcement
// @Security BearerAuth
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} router.successResponse{data=AnnouncementResponse} "Announcement"
// @Failure 400 {object} router.errorResponse "Invalid announcement id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Announcement not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/announcements/{id} [get]
func (h *HTTPEndpoint) GetAnnouncement(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	a, err := h.uc.GetAnnouncement(r.Context(), usecase.GetAnnouncementInput{ID: id})
	if err != nil {
		return nil, err
	}

	return announcementResponse(*a), nil
}

// ListAllAnnouncements returns all announcements for the admin screen.
// @Summary List all announcements
// @Description Returns every announcement including scheduled ones. Admin only.
// @Tags Announcement
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Pagination limit"
// @Param offset query int false "Pagination offset"
// @Success 200 {object} router.successResponse{data=AnnouncementsResponse} "Announcement list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/announcements [get]
func (h *HTTPEndpoint) ListAllAnnouncements(r *router.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}

	items, err := h.uc.ListAllAnnouncements(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return announcementsResponse(items), nil
}

// CreateAnnouncement creates and possibly publishes an announcement.
// @Summary Create announcement
// @Description Creates an announcement. Publishes immediately unless publish_at is in the future. Admin only.
// @Tags Announcement
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key for safe retries"
// @Param request body CreateAnnouncementRequest true "Announcement"
// @Success 200 {object} router.successResponse{data=AnnouncementResponse} "Created announcement"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Duplicate idempotency key"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/announcements [post]
func (h *HTTPEndpoint) CreateAnnouncement(r *router.Request) (any, error) {
	var req CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	a, err := h.uc.CreateAnnouncement(r.Context(), usecase.CreateAnnouncementInput{
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		Title:          req.Title,
		Body:           req.Body,
		Scope:          req.Scope,
		TrackID:        req.TrackID,
		CohortID:       req.CohortID,
		SendEmail:      req.SendEmail,
		PublishAt:      req.PublishAt,
	})
	if err != nil {
		return nil, err
	}

	return announcementResponse(*a), nil
}

// PublishSweep publishes scheduled announcements that are due.
// @Summary Run announcement sweep
// @Description Publishes announcements whose scheduled time has arrived. Called by the external cron.
// @Tags Announcement
// @Produce json
// @Param X-Cron-Secret header string true "Cron secret"
// @Success 200 {object} router.successResponse{data=PublishSweepResponse} "Sweep result"
// @Failure 401 {object} router.errorResponse "Invalid secret"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/internal/cron/announcement-sweep [post]
func (h *HTTPEndpoint) PublishSweep(r *router.Request) (any, error) {
	out, err := h.uc.PublishSweep(r.Context(), usecase.PublishSweepInput{
		Secret: r.Header.Get("X-Cron-Secret"),
	})
	if err != nil {
		return nil, err
	}

	return PublishSweepResponse{Published: out.Published}, nil
}

func listInput(r *router.Request) (usecase.ListAnnouncementsInput, error) {
	query := r.URL.Query()

	limit, err := parseInt32(query.Get("limit"))
	if err != nil {
		return usecase.ListAnnouncementsInput{}, goerror.NewInvalidFormat()
	}
	offset, err := parseInt32(query.Get("offset"))
	if err != nil {
		return usecase.ListAnnouncementsInput{}, goerror.NewInvalidFormat()
	}

	return usecase.ListAnnouncementsInput{Limit: limit, Offset: offset}, nil
}

func announcementResponse(a entity.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Scope:       a.Scope.String(),
		TrackID:     a.TrackID,
		CohortID:    a.CohortID,
		SendEmail:   a.SendEmail,
		PublishAt:   a.PublishAt,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}

func announcementsResponse(items []entity.Announcement) AnnouncementsResponse {
	resp := make([]AnnouncementResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, announcementResponse(a))
	}

	return AnnouncementsResponse{Announcements: resp}
}

func parseInt32(raw string) (int32, error) {
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}

	return int32(v), nil
}
