package inbound

import (
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/cohorts", end.ListMyCohorts)
	r.GET("/api/v1/cohorts/:id/assignments", end.ListAssignments)
	r.POST("/api/v1/cohorts/:id/assignments", end.CreateAssignment)

	r.POST("/api/v1/assignments/:id/publish", end.PublishAssignment)
	r.POST("/api/v1/assignments/:id/submissions", end.SubmitAssignment)
	r.GET("/api/v1/assignments/:id/submissions", end.ListSubmissions)
	r.GET("/api/v1/assignments/:id/submission", end.MySubmission)

	r.POST("/api/v1/submissions/:id/grade", end.GradeSubmission)
	r.GET("/api/v1/submissions/:id/attachment", end.AttachmentURL)

	r.POST("/api/v1/internal/cron/deadline-sweep", end.DeadlineSweep)
}
