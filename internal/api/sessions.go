package api

import (
	"errors"
	"net/http"

	"github.com/UnknownOlympus/locator/internal/resolver"
	"github.com/UnknownOlympus/locator/internal/view"
	"github.com/gin-gonic/gin"
)

// QueryRequest carries the current contents of the search box.
type QueryRequest struct {
	Query string `json:"query"`
}

// SearchRequest commits a free-text search.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SelectRequest picks a suggestion from the session's current list.
type SelectRequest struct {
	Index *int `json:"index" binding:"required"`
}

func (s *Server) session(c *gin.Context) (*view.Session, bool) {
	sess, err := s.registry.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return sess, true
}

// createSession answers POST /api/v1/sessions.
func (s *Server) createSession(c *gin.Context) {
	sess := s.registry.Create()
	c.JSON(http.StatusCreated, sess.Snapshot())
}

// getSession answers GET /api/v1/sessions/:id.
func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// typeQuery answers PUT /api/v1/sessions/:id/query. Suggestions arrive
// after the debounce window and show up in later snapshots.
func (s *Server) typeQuery(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sess.Type(req.Query)
	c.JSON(http.StatusAccepted, sess.Snapshot())
}

// selectSuggestion answers POST /api/v1/sessions/:id/select.
func (s *Server) selectSuggestion(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	_, err := sess.Select(c.Request.Context(), *req.Index)
	s.respondSearch(c, sess, err)
}

// searchSession answers POST /api/v1/sessions/:id/search.
func (s *Server) searchSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	_, err := sess.Search(c.Request.Context(), req.Query)
	s.respondSearch(c, sess, err)
}

// respondSearch answers with the session snapshot. Not found and transport
// failures still carry the snapshot so the client can show the status message.
func (s *Server) respondSearch(c *gin.Context, sess *view.Session, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, sess.Snapshot())
	case errors.Is(err, resolver.ErrNotFound), resolver.IsTransport(err):
		status, _ := statusFor(err)
		c.JSON(status, sess.Snapshot())
	default:
		s.fail(c, err)
	}
}

// deleteSession answers DELETE /api/v1/sessions/:id.
func (s *Server) deleteSession(c *gin.Context) {
	if err := s.registry.Remove(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
