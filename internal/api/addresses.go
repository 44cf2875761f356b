package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/proximity"
	"github.com/gin-gonic/gin"
)

// SuggestResponse lists address candidates for a partial query.
type SuggestResponse struct {
	Query       string              `json:"query"`
	Suggestions []models.Suggestion `json:"suggestions"`
}

// NearbyResponse is the firm list ranked around Origin.
type NearbyResponse struct {
	Origin   models.Coordinates       `json:"origin"`
	Location *models.ResolvedLocation `json:"location,omitempty"`
	Firms    []models.RankedFirm      `json:"firms"`
}

// suggest answers GET /api/v1/addresses/suggest?q=
func (s *Server) suggest(c *gin.Context) {
	query := c.Query("q")

	res := s.newResolver()
	defer res.Close()

	c.JSON(http.StatusOK, SuggestResponse{
		Query:       query,
		Suggestions: res.Lookup(c.Request.Context(), query),
	})
}

// resolve answers GET /api/v1/addresses/resolve?q=
func (s *Server) resolve(c *gin.Context) {
	res := s.newResolver()
	defer res.Close()

	loc, err := res.Resolve(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// nearby answers GET /api/v1/attorneys/nearby with either lat and lon, a
// free-text q, or nothing for the default location.
func (s *Server) nearby(c *gin.Context) {
	resp := NearbyResponse{Origin: s.cfg.DefaultLocation}

	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	query := strings.TrimSpace(c.Query("q"))

	switch {
	case latRaw != "" || lonRaw != "":
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			badRequest(c, "lat and lon must both be valid coordinates")
			return
		}
		resp.Origin = models.Coordinates{Latitude: lat, Longitude: lon}
	case query != "":
		res := s.newResolver()
		defer res.Close()

		loc, err := res.Resolve(c.Request.Context(), query)
		if err != nil {
			s.fail(c, err)
			return
		}
		resp.Origin = loc.Coordinates
		resp.Location = &loc
	}

	resp.Firms = proximity.Rank(resp.Origin, s.registry.Firms())
	c.JSON(http.StatusOK, resp)
}
