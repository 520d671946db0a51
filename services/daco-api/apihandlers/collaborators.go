package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	mw "github.com/icgc-argo/dac-api-sub000/pkg/apihelpers/middlewares"
	appService "github.com/icgc-argo/dac-api-sub000/pkg/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func (h *HttpEndpoints) addCollaboratorsAPI(rg *gin.RouterGroup) {
	collaborators := rg.Group("/:appID/collaborators")
	{
		collaborators.POST("", mw.RequirePayload(), h.addCollaborator)
		collaborators.PUT("/:collaboratorID", mw.RequirePayload(), h.updateCollaborator)
		collaborators.DELETE("/:collaboratorID", h.deleteCollaborator)
	}
}

func (h *HttpEndpoints) addCollaborator(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	var collaborator types.Collaborator
	if err := c.ShouldBindJSON(&collaborator); err != nil {
		slog.Warn("invalid collaborator payload", slog.String("appId", appID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	app, err := appService.AddCollaborator(appID, collaborator, principal, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

func (h *HttpEndpoints) updateCollaborator(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	var collaborator types.Collaborator
	if err := c.ShouldBindJSON(&collaborator); err != nil {
		slog.Warn("invalid collaborator payload", slog.String("appId", appID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	collaborator.ID = c.Param("collaboratorID")

	app, err := appService.UpdateCollaborator(appID, collaborator, principal, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

func (h *HttpEndpoints) deleteCollaborator(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")
	collaboratorID := c.Param("collaboratorID")

	app, err := appService.DeleteCollaborator(appID, collaboratorID, principal, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}
