package inbound

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/course/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

const maxAttachmentSize = 32 << 20 // 32 MiB

type HTTPEndpoint struct {
	uc uc
}

// ListMyCohorts returns the caller's cohorts.
// @Summary List my cohorts
// @Description Returns the cohorts the authenticated user belongs to.
// @Tags Course
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=CohortsResponse} "Cohort list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/cohorts [get]
func (h *HTTPEndpoint) ListMyCohorts(r *router.Request) (any, error) {
	cohorts, err := h.uc.ListMyCohorts(r.Context())
	if err != nil {
		return nil, err
	}

	resp := make([]CohortResponse, 0, len(cohorts))
	for _, c := range cohorts {
		resp = append(resp, CohortResponse{
			ID:      c.ID,
			TrackID: c.TrackID,
			Name:    c.Name,
			StartAt: c.StartAt,
			EndAt:   c.EndAt,
		})
	}

	return CohortsResponse{Cohorts: resp}, nil
}

// ListAssignments returns cohort assignments.
// @Summary List assignments
// @Description Returns assignments for a cohort. Facilitators also see drafts.
// @Tags Course
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cohort ID"
// @Success 200 {object} router.successResponse{data=AssignmentsResponse} "Assignment list"
// @Failure 400 {object} router.errorResponse "Invalid cohort id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a cohort member"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/cohorts/{id}/assignments [get]
func (h *HTTPEndpoint) ListAssignments(r *router.Request) (any, error) {
	cohortID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	assignments, err := h.uc.ListAssignments(r.Context(), usecase.ListAssignmentsInput{CohortID: cohortID})
	if err != nil {
		return nil, err
	}

	resp := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, assignmentResponse(a))
	}

	return AssignmentsResponse{Assignments: resp}, nil
}

// CreateAssignment creates a draft assignment.
// @Summary Create assignment
// @Description Creates a draft assignment in a cohort. Facilitators only.
// @Tags Course
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Cohort ID"
// @Param request body CreateAssignmentRequest true "Assignment"
// @Success 200 {object} router.successResponse{data=AssignmentResponse} "Created assignment"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a facilitator"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/cohorts/{id}/assignments [post]
func (h *HTTPEndpoint) CreateAssignment(r *router.Request) (any, error) {
	cohortID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	a, err := h.uc.CreateAssignment(r.Context(), usecase.CreateAssignmentInput{
		CohortID:    cohortID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		MaxScore:    req.MaxScore,
	})
	if err != nil {
		return nil, err
	}

	return assignmentResponse(*a), nil
}

// PublishAssignment publishes a draft assignment.
// @Summary Publish assignment
// @Description Makes a draft assignment visible to the cohort and notifies members.
// @Tags Course
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid assignment id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a facilitator"
// @Failure 404 {object} router.errorResponse "Assignment not found"
// @Failure 409 {object} router.errorResponse "Already published"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/assignments/{id}/publish [post]
func (h *HTTPEndpoint) PublishAssignment(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.PublishAssignment(r.Context(), usecase.PublishAssignmentInput{AssignmentID: id})
}

// SubmitAssignment records a submission with an optional attachment.
// @Summary Submit assignment
// @Description Records the caller's submission. Multipart with a "body" field and optional "attachment" file.
// @Tags Course
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param id path int true "Assignment ID"
// @Param body formData string true "Submission text"
// @Param attachment formData file false "Attachment"
// @Success 200 {object} router.successResponse{data=SubmissionResponse} "Created submission"
// @Failure 400 {object} router.errorResponse "Invalid request"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a cohort member"
// @Failure 409 {object} router.errorResponse "Already submitted"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/assignments/{id}/submissions [post]
func (h *HTTPEndpoint) SubmitAssignment(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	in := usecase.SubmitAssignmentInput{
		AssignmentID: id,
		Body:         r.FormValue("body"),
	}

	file, header, err := r.FormFile("attachment")
	switch {
	case err == nil:
		defer file.Close()
		in.Attachment = file
		in.AttachmentName = header.Filename
		in.AttachmentSize = header.Size
		in.AttachmentContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
	default:
		return nil, goerror.NewInvalidFormat()
	}

	sub, err := h.uc.SubmitAssignment(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return submissionResponse(*sub), nil
}

// MySubmission returns the caller's submission for an assignment.
// @Summary Get my submission
// @Description Returns the caller's own submission, including the grade once available.
// @Tags Course
// @Security BearerAuth
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} router.successResponse{data=SubmissionResponse} "Submission"
// @Failure 400 {object} router.errorResponse "Invalid assignment id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Submission not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/assignments/{id}/submission [get]
func (h *HTTPEndpoint) MySubmission(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	sub, err := h.uc.MySubmission(r.Context(), usecase.MySubmissionInput{AssignmentID: id})
	if err != nil {
		return nil, err
	}

	return submissionResponse(*sub), nil
}

// ListSubmissions returns all submissions for an assignment.
// @Summary List submissions
// @Description Returns submissions for an assignment. Facilitators only.
// @Tags Course
// @Security BearerAuth
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} router.successResponse{data=SubmissionsResponse} "Submission list"
// @Failure 400 {object} router.errorResponse "Invalid assignment id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a facilitator"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/assignments/{id}/submissions [get]
func (h *HTTPEndpoint) ListSubmissions(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	subs, err := h.uc.ListSubmissions(r.Context(), usecase.ListSubmissionsInput{AssignmentID: id})
	if err != nil {
		return nil, err
	}

	resp := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, submissionResponse(sub))
	}

	return SubmissionsResponse{Submissions: resp}, nil
}

// GradeSubmission records a grade for a submission.
// @Summary Grade submission
// @Description Records a score and feedback for a submission. Facilitators only.
// @Tags Course
// @Security BearerAuth
// @Accept json
// @Param id path int true "Submission ID"
// @Param request body GradeSubmissionRequest true "Grade"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a facilitator"
// @Failure 404 {object} router.errorResponse "Submission not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/submissions/{id}/grade [post]
func (h *HTTPEndpoint) GradeSubmission(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req GradeSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.GradeSubmission(r.Context(), usecase.GradeSubmissionInput{
		SubmissionID: id,
		Score:        req.Score,
		Feedback:     req.Feedback,
	})
}

// AttachmentURL returns a download link for a submission attachment.
// @Summary Get attachment URL
// @Description Returns a short-lived signed URL for the submission attachment.
// @Tags Course
// @Security BearerAuth
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} router.successResponse{data=AttachmentURLResponse} "Signed URL"
// @Failure 400 {object} router.errorResponse "Invalid submission id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not allowed"
// @Failure 404 {object} router.errorResponse "No attachment"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/submissions/{id}/attachment [get]
func (h *HTTPEndpoint) AttachmentURL(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	url, err := h.uc.AttachmentURL(r.Context(), usecase.AttachmentURLInput{SubmissionID: id})
	if err != nil {
		return nil, err
	}

	return AttachmentURLResponse{URL: url}, nil
}

// DeadlineSweep triggers deadline reminders.
// @Summary Run deadline sweep
// @Description Sends reminders for assignments due soon. Called by the external cron with a shared secret.
// @Tags Course
// @Produce json
// @Param X-Cron-Secret header string true "Cron secret"
// @Success 200 {object} router.successResponse{data=DeadlineSweepResponse} "Sweep result"
// @Failure 401 {object} router.errorResponse "Invalid secret"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/internal/cron/deadline-sweep [post]
func (h *HTTPEndpoint) DeadlineSweep(r *router.Request) (any, error) {
	out, err := h.uc.DeadlineSweep(r.Context(), usecase.DeadlineSweepInput{
		Secret: r.Header.Get("X-Cron-Secret"),
	})
	if err != nil {
		return nil, err
	}

	return DeadlineSweepResponse{Reminded: out.Reminded}, nil
}

func assignmentResponse(a entity.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		CohortID:    a.CohortID,
		Title:       a.Title,
		Description: a.Description,
		DueAt:       a.DueAt,
		MaxScore:    a.MaxScore,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}

func submissionResponse(sub entity.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:            sub.ID,
		AssignmentID:  sub.AssignmentID,
		StudentID:     sub.StudentID,
		StudentName:   sub.StudentName,
		Body:          sub.Body,
		HasAttachment: sub.AttachmentKey != "",
		Score:         sub.Score,
		Feedback:      sub.Feedback,
		GradedAt:      sub.GradedAt,
		SubmittedAt:   sub.SubmittedAt,
	}
}
