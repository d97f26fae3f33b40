package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
)

func ListSessions(cs *services.ConciergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		sessions, err := cs.ListSessions(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(sessions, ""))
	}
}

func CreateSession(cs *services.ConciergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		var req dto.CreateSessionRequest
		if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
			return
		}
		session, err := cs.CreateSession(c.Request.Context(), claims.UserID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(session, "Session created"))
	}
}

func GetSession(cs *services.ConciergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		session, err := cs.GetSession(c.Request.Context(), claims.UserID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(session, ""))
	}
}

func UpdateSession(cs *services.ConciergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		var req dto.UpdateSessionRequest
		if !bindJSON(c, &req) {
			return
		}
		session, err := cs.UpdateSession(c.Request.Context(), claims.UserID, c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(session, "Session updated"))
	}
}

func ListMessages(cs *services.ConciergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		messages, err := cs.ListMessages(c.Request.Context(), claims.UserID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(messages, ""))
	}
}

func AddMessage(cs *services.ConciergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		var req dto.AddMessageRequest
		if !bindJSON(c, &req) {
			return
		}
		session, err := cs.AddMessage(c.Request.Context(), claims.UserID, c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(session, "Message added"))
	}
}

// Chat is the stateless completion proxy; nothing is stored.
func Chat(cs *services.ConciergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := cs.Chat(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, ""))
	}
}
