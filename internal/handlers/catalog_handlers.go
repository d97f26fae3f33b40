package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
)

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := parsePage(c, services.DefaultPageSize)
		if !ok {
			return
		}
		featured, ok := queryBool(c, "featured")
		if !ok {
			return
		}
		trending, ok := queryBool(c, "trending")
		if !ok {
			return
		}
		live, ok := queryBool(c, "live")
		if !ok {
			return
		}
		from, ok := queryTime(c, "from")
		if !ok {
			return
		}
		to, ok := queryTime(c, "to")
		if !ok {
			return
		}
		lat, ok := queryFloat(c, "lat")
		if !ok {
			return
		}
		lng, ok := queryFloat(c, "lng")
		if !ok {
			return
		}
		radius, ok := queryFloat(c, "radiusKm")
		if !ok {
			return
		}

		var near *services.NearFilter
		if lat != nil || lng != nil {
			if lat == nil || lng == nil {
				badRequest(c, "lat and lng must be provided together")
				return
			}
			near = &services.NearFilter{Latitude: *lat, Longitude: *lng, RadiusKm: 10}
			if radius != nil {
				near.RadiusKm = *radius
			}
		}

		filter := models.EventFilter{
			Category: strings.TrimSpace(c.Query("category")),
			Featured: featured,
			Trending: trending,
			Live:     live,
			Search:   strings.TrimSpace(c.Query("search")),
			From:     from,
			To:       to,
			Offset:   p.Offset,
			Limit:    p.Limit,
		}
		events, total, err := es.ListEvents(c.Request.Context(), filter, near)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(events, p.number(), p.Limit, total))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func ListHotels(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := parsePage(c, services.DefaultPageSize)
		if !ok {
			return
		}
		minPrice, ok := queryFloat(c, "minPrice")
		if !ok {
			return
		}
		maxPrice, ok := queryFloat(c, "maxPrice")
		if !ok {
			return
		}
		minRating, ok := queryFloat(c, "minRating")
		if !ok {
			return
		}

		filter := models.HotelFilter{
			Search:    strings.TrimSpace(c.Query("search")),
			MinPrice:  minPrice,
			MaxPrice:  maxPrice,
			MinRating: minRating,
			Amenity:   strings.TrimSpace(c.Query("amenity")),
			Sort:      strings.ToLower(strings.TrimSpace(c.Query("sort"))),
			Offset:    p.Offset,
			Limit:     p.Limit,
		}
		hotels, total, err := hs.ListHotels(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(hotels, p.number(), p.Limit, total))
	}
}

func GetHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotel, err := hs.GetHotel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(hotel, ""))
	}
}

func ListBands(vs *services.VoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year := 0
		if raw := strings.TrimSpace(c.Query("year")); raw != "" {
			y, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(c, "invalid year parameter")
				return
			}
			year = y
		}
		bands, err := vs.ListBands(c.Request.Context(), year)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bands, ""))
	}
}

func VoteForBand(vs *services.VoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		band, err := vs.Vote(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(band, "Vote recorded"))
	}
}

func ListLiveUpdates(ls *services.LiveUpdateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		since, ok := queryTime(c, "since")
		if !ok {
			return
		}
		limit := 0
		if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
			l, err := strconv.Atoi(raw)
			if err != nil || l <= 0 {
				badRequest(c, "invalid limit parameter")
				return
			}
			limit = l
		}
		updates, err := ls.ListLiveUpdates(c.Request.Context(),
			strings.TrimSpace(c.Query("category")), strings.TrimSpace(c.Query("eventId")), since, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(updates, ""))
	}
}

// PostLiveUpdate runs behind RequireAdmin.
func PostLiveUpdate(ls *services.LiveUpdateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, authorID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.LiveUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		update, err := ls.PostLiveUpdate(c.Request.Context(), authorID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(update, "Live update posted"))
	}
}
