package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
)

func RaiseEmergency(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.EmergencyRequest
		// an empty body is a valid emergency
		if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
			return
		}
		incident, err := ss.RaiseEmergency(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(incident, "Emergency alert sent"))
	}
}

func ReportIncident(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.IncidentRequest
		if !bindJSON(c, &req) {
			return
		}
		incident, err := ss.ReportIncident(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(incident, "Incident reported"))
	}
}

func ListIncidents(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		p, ok := parsePage(c, services.DefaultPageSize)
		if !ok {
			return
		}
		incidents, total, err := ss.ListIncidents(c.Request.Context(), userID, strings.TrimSpace(c.Query("status")), p.Offset, p.Limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(incidents, p.number(), p.Limit, total))
	}
}

func CreateFamilyGroup(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.FamilyGroupRequest
		if !bindJSON(c, &req) {
			return
		}
		group, err := ss.CreateFamilyGroup(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(group, "Family group created"))
	}
}

func ListFamilyGroups(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		groups, err := ss.ListFamilyGroups(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(groups, ""))
	}
}

func AddFamilyMember(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.FamilyMemberRequest
		if !bindJSON(c, &req) {
			return
		}
		member, err := ss.AddFamilyMember(c.Request.Context(), userID, c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(member, "Family member added"))
	}
}

func UpdateFamilyMember(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var patch dto.FamilyMemberPatch
		if !bindJSON(c, &patch) {
			return
		}
		member, err := ss.UpdateFamilyMember(c.Request.Context(), userID, c.Param("id"), c.Param("memberId"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(member, "Family member updated"))
	}
}

func CreateLocationShare(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.LocationShareRequest
		if !bindJSON(c, &req) {
			return
		}
		share, err := ss.CreateLocationShare(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(share, "Location sharing started"))
	}
}

func ListLocationShares(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		shares, err := ss.ListLocationShares(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(shares, ""))
	}
}

// GetSharedLocation is public; the code is the only credential.
func GetSharedLocation(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		share, err := ss.GetLocationShareByCode(c.Request.Context(), c.Param("code"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(share, ""))
	}
}

func UpdateLocationShare(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.LocationUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		share, err := ss.UpdateLocationShare(c.Request.Context(), userID, c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(share, "Location updated"))
	}
}

func StopLocationShare(ss *services.SafetyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		if err := ss.StopLocationShare(c.Request.Context(), userID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Location sharing stopped"))
	}
}
