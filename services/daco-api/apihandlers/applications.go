package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icgc-argo/dac-api-sub000/pkg/apihelpers"
	mw "github.com/icgc-argo/dac-api-sub000/pkg/apihelpers/middlewares"
	appService "github.com/icgc-argo/dac-api-sub000/pkg/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/lifecycle"
	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

func (h *HttpEndpoints) AddApplicationsAPI(rg *gin.RouterGroup) {
	applications := rg.Group("/applications")
	applications.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	{
		applications.GET("", h.getApplications)
		applications.POST("", h.createApplication)
		applications.GET("/:appID", h.getApplication)
		applications.PATCH("/:appID", mw.RequirePayload(), h.updateApplication)
		applications.POST("/:appID/renew", h.renewApplication)

		h.addCollaboratorsAPI(applications)
		h.addDocumentsAPI(applications)
	}

	review := rg.Group("/review")
	review.Use(mw.GetAndValidateUserJWT(h.tokenSignKey), mw.IsAdminUser())
	{
		review.GET("/applications", h.getReviewQueue)
	}
}

func (h *HttpEndpoints) getApplications(c *gin.Context) {
	principal := getPrincipal(c)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Warn("invalid listing query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	apps, paginationInfos, err := appService.SearchApplications(principal, appService.SearchQuery{
		Search: query.Search,
		States: query.States,
		Sort:   query.Sort,
		Page:   query.Page,
		Limit:  query.Limit,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      apps,
		"pagination": paginationInfos,
	})
}

// getReviewQueue lists applications awaiting a reviewer decision. Reviewers
// can widen the listing with an explicit states filter.
func (h *HttpEndpoints) getReviewQueue(c *gin.Context) {
	principal := getPrincipal(c)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Warn("invalid listing query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	states := query.States
	if len(states) == 0 {
		states = []string{appTypes.APPLICATION_STATE_REVIEW}
	}

	apps, paginationInfos, err := appService.SearchApplications(principal, appService.SearchQuery{
		Search: query.Search,
		States: states,
		Sort:   query.Sort,
		Page:   query.Page,
		Limit:  query.Limit,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      apps,
		"pagination": paginationInfos,
	})
}

func (h *HttpEndpoints) createApplication(c *gin.Context) {
	principal := getPrincipal(c)

	app, err := appService.CreateApplication(principal, time.Now())
	if err != nil {
		slog.Error("failed to create application", slog.String("error", err.Error()))
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application": app})
}

func (h *HttpEndpoints) getApplication(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	app, err := appService.GetApplication(appID, principal)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

func (h *HttpEndpoints) updateApplication(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	var update lifecycle.ApplicationUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		slog.Warn("invalid update payload", slog.String("appId", appID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	app, err := appService.SubmitUpdate(appID, &update, principal, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

func (h *HttpEndpoints) renewApplication(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	renewal, err := appService.RenewApplication(appID, principal, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application": renewal})
}
