package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/icgc-argo/dac-api-sub000/pkg/apihelpers/middlewares"
	jwthandling "github.com/icgc-argo/dac-api-sub000/pkg/jwt-handling"
	emailsending "github.com/icgc-argo/dac-api-sub000/pkg/messaging/email-sending"

	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddServiceAPI(rg *gin.RouterGroup) {
	service := rg.Group("/service")
	service.Use(mw.GetAndValidateServiceJWT(h.serviceTokenSignKey))
	{
		service.POST("/notifications", mw.RequirePayload(), h.queueNotification)
	}
}

// QueueNotificationRequest is the request body for the service notifications
// endpoint
type QueueNotificationRequest struct {
	AppID       string            `json:"appId"`
	To          []string          `json:"to"`
	MessageType string            `json:"messageType"`
	Payload     map[string]string `json:"payload"`
}

// queueNotification renders a templated email on behalf of a trusted
// service and places it into the outgoing queue. The messaging job picks it
// up on its next run.
func (h *HttpEndpoints) queueNotification(c *gin.Context) {
	token := c.MustGet("validatedServiceToken").(*jwthandling.ServiceClaims)

	var req QueueNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("queueNotification: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.To) < 1 || req.MessageType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to and messageType are required"})
		return
	}

	err := emailsending.QueueEmailByTemplate(
		req.AppID,
		req.To,
		req.MessageType,
		req.Payload,
		true,
	)
	if err != nil {
		slog.Error("queueNotification: failed to queue email",
			slog.String("serviceName", token.ServiceName),
			slog.String("messageType", req.MessageType),
			slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not queue notification"})
		return
	}

	slog.Info("queueNotification: notification queued",
		slog.String("serviceName", token.ServiceName),
		slog.String("messageType", req.MessageType))

	c.JSON(http.StatusOK, gin.H{"message": "notification queued"})
}
