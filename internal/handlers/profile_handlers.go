package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/i18n"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
)

func GetProfile(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		profile, err := ps.GetProfile(c.Request.Context(), claims, c.Param("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(profile, ""))
	}
}

func UpdateProfile(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		var patch dto.ProfilePatch
		if !bindJSON(c, &patch) {
			return
		}
		profile, err := ps.UpdateProfile(c.Request.Context(), claims, c.Param("userId"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(profile, "Profile updated"))
	}
}

func GetLanguage(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		lang, err := ps.GetLanguage(c.Request.Context(), claims, c.Param("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(lang, ""))
	}
}

func SetLanguage(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		var req dto.LanguageRequest
		if !bindJSON(c, &req) {
			return
		}
		lang, err := ps.SetLanguage(c.Request.Context(), claims, c.Param("userId"), req.Language)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(lang, "Language updated"))
	}
}

func ListLanguages() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(i18n.Supported(), ""))
	}
}

func GetTranslations() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Normalize(c.Param("lang"))
		if !i18n.IsSupported(lang) {
			c.JSON(http.StatusNotFound, models.CodedErrorResponse("unsupported language", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"language":     lang,
			"translations": i18n.Table(lang),
		}, ""))
	}
}
