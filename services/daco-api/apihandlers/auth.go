package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	mw "github.com/icgc-argo/dac-api-sub000/pkg/apihelpers/middlewares"
	jwthandling "github.com/icgc-argo/dac-api-sub000/pkg/jwt-handling"

	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signin-with-idp", mw.RequirePayload(), h.signInWithIdP)

	serviceTokens := auth.Group("/")
	serviceTokens.Use(mw.GetAndValidateUserJWT(h.tokenSignKey), mw.IsAdminUser())
	{
		serviceTokens.POST("/service-token", mw.RequirePayload(), h.mintServiceToken)
	}
}

// SignInRequest is the request body for the signin-with-idp endpoint
type SignInRequest struct {
	Sub   string   `json:"sub"`
	Roles []string `json:"roles"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
}

// signInWithIdP exchanges a verified identity from the IdP callback for an
// access token the SPA uses on the application endpoints.
func (h *HttpEndpoints) signInWithIdP(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("signInWithIdP: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Sub == "" {
		slog.Warn("signInWithIdP: no sub")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing sub"})
		return
	}

	isAdmin := false
	for _, role := range req.Roles {
		if role == "admin" {
			isAdmin = true
			break
		}
	}

	token, err := jwthandling.GenerateNewUserToken(
		h.tokenExpiresIn,
		req.Sub,
		req.Email,
		isAdmin,
		map[string]string{},
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("signInWithIdP: error generating token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slog.Info("signInWithIdP: user signed in", slog.String("sub", req.Sub), slog.Bool("isAdmin", isAdmin))

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresAt":   time.Now().Add(h.tokenExpiresIn).Unix(),
		"isAdmin":     isAdmin,
	})
}

// ServiceTokenRequest is the request body for the service-token endpoint
type ServiceTokenRequest struct {
	ServiceName string `json:"serviceName"`
}

// mintServiceToken lets an admin issue a token for a machine caller of the
// service endpoints.
func (h *HttpEndpoints) mintServiceToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req ServiceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("mintServiceToken: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ServiceName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing serviceName"})
		return
	}

	serviceToken, err := jwthandling.GenerateNewServiceToken(
		h.serviceTokenExpiresIn,
		req.ServiceName,
		h.serviceTokenSignKey,
	)
	if err != nil {
		slog.Error("mintServiceToken: error generating token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slog.Info("mintServiceToken: service token issued",
		slog.String("serviceName", req.ServiceName),
		slog.String("issuedBy", token.ID))

	c.JSON(http.StatusOK, gin.H{
		"serviceToken": serviceToken,
		"expiresAt":    time.Now().Add(h.serviceTokenExpiresIn).Unix(),
	})
}
