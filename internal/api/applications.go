package api

import (
	"net/http"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/gin-gonic/gin"
)

// ReviewRequest is the admin decision body for approve and deny.
type ReviewRequest struct {
	Notes      string `json:"notes"`
	ReviewedBy string `json:"reviewed_by"`
}

// ApprovalResponse returns the approved application and the firm created from it.
type ApprovalResponse struct {
	Application models.Application `json:"application"`
	Firm        models.LawFirm     `json:"firm"`
}

// submitApplication answers POST /api/v1/applications.
func (s *Server) submitApplication(c *gin.Context) {
	var app models.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		badRequest(c, err.Error())
		return
	}

	saved, err := s.applications.Submit(c.Request.Context(), app)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// listApplications answers GET /api/v1/admin/applications[?status=].
func (s *Server) listApplications(c *gin.Context) {
	apps, err := s.applications.List(c.Request.Context(), models.ApplicationStatus(c.Query("status")))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// getApplication answers GET /api/v1/admin/applications/:id.
func (s *Server) getApplication(c *gin.Context) {
	app, err := s.applications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func bindReview(c *gin.Context) (models.Review, bool) {
	var req ReviewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return models.Review{}, false
		}
	}
	return models.Review{Notes: req.Notes, ReviewedBy: req.ReviewedBy}, true
}

// approveApplication answers POST /api/v1/admin/applications/:id/approve.
func (s *Server) approveApplication(c *gin.Context) {
	review, ok := bindReview(c)
	if !ok {
		return
	}

	app, firm, err := s.applications.Approve(c.Request.Context(), c.Param("id"), review)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ApprovalResponse{Application: app, Firm: firm})
}

// denyApplication answers POST /api/v1/admin/applications/:id/deny.
func (s *Server) denyApplication(c *gin.Context) {
	review, ok := bindReview(c)
	if !ok {
		return
	}

	app, err := s.applications.Deny(c.Request.Context(), c.Param("id"), review)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
