package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
)

func SearchPlaces(gs *services.GeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			badRequest(c, "q is required")
			return
		}
		limit := 5
		if raw := c.Query("limit"); raw != "" {
			l, err := strconv.Atoi(raw)
			if err != nil || l <= 0 {
				badRequest(c, "invalid limit parameter")
				return
			}
			limit = l
		}
		places, err := gs.Search(c.Request.Context(), q, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(places, ""))
	}
}

func ReversePlace(gs *services.GeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, lng, ok := requiredPoint(c, "lat", "lng")
		if !ok {
			return
		}
		place, err := gs.Reverse(c.Request.Context(), lat, lng)
		if err != nil {
			respondError(c, err)
			return
		}
		// a miss is a null place, not an error
		c.JSON(http.StatusOK, models.ApiResponse{Success: true, Data: place})
	}
}

func EstimateDistance(gs *services.GeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat1, lng1, ok := requiredPoint(c, "fromLat", "fromLng")
		if !ok {
			return
		}
		lat2, lng2, ok := requiredPoint(c, "toLat", "toLng")
		if !ok {
			return
		}
		estimate, err := gs.Distance(lat1, lng1, lat2, lng2)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(estimate, ""))
	}
}

func requiredPoint(c *gin.Context, latKey, lngKey string) (float64, float64, bool) {
	lat, ok := queryFloat(c, latKey)
	if !ok {
		return 0, 0, false
	}
	lng, ok := queryFloat(c, lngKey)
	if !ok {
		return 0, 0, false
	}
	if lat == nil || lng == nil {
		badRequest(c, latKey+" and "+lngKey+" are required")
		return 0, 0, false
	}
	return *lat, *lng, true
}
