package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	jwthandling "github.com/icgc-argo/dac-api-sub000/pkg/jwt-handling"
)

func getPrincipal(c *gin.Context) types.Principal {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	return token.ToPrincipal()
}

// writeServiceError maps the typed lifecycle errors onto HTTP statuses. The
// application JSON shape stays close to the error type so clients can react
// to conflicts and validation issues programmatically.
func writeServiceError(c *gin.Context, err error) {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   validationErr.Error(),
			"section": validationErr.Section,
			"fields":  validationErr.Errors,
		})
		return
	}

	var conflictErr *types.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error": conflictErr.Message,
			"code":  conflictErr.Code,
		})
		return
	}

	var versionConflictErr *types.VersionConflictError
	if errors.As(err, &versionConflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error": versionConflictErr.Error(),
			"code":  "VERSION_CONFLICT",
		})
		return
	}

	var notFoundErr *types.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return
	}

	var forbiddenErr *types.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenErr.Error()})
		return
	}

	var stateErr *types.StateError
	if errors.As(err, &stateErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": stateErr.Error(),
			"state": stateErr.State,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
}
