package apihandlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	appService "github.com/icgc-argo/dac-api-sub000/pkg/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/utils"
)

const maxUploadSize = 10 << 20

var allowedDocumentContentTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
}

func (h *HttpEndpoints) addDocumentsAPI(rg *gin.RouterGroup) {
	documents := rg.Group("/:appID/documents")
	{
		documents.POST("", h.uploadDocument)
		documents.GET("/:objectID", h.downloadDocument)
		documents.DELETE("/:objectID", h.deleteDocument)
	}
}

func (h *HttpEndpoints) uploadDocument(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	docType := c.PostForm("type")
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document type is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		slog.Warn("missing file in upload", slog.String("appId", appID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds maximum upload size"})
		return
	}

	contentType, err := utils.ValidateFileTypeFromContent(fileHeader, allowedDocumentContentTypes)
	if err != nil {
		slog.Warn("rejected document upload", slog.String("appId", appID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", slog.String("appId", appID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	app, err := appService.UploadDocument(c.Request.Context(), appID, docType, fileHeader.Filename, contentType, file, principal, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

func (h *HttpEndpoints) downloadDocument(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	// object ids are server-assigned uuids, anything else never resolves
	objectID := c.Param("objectID")
	if !utils.IsURLSafe(objectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid object id"})
		return
	}

	reader, info, err := appService.DownloadDocument(c.Request.Context(), appID, objectID, principal)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(info.Name))
	c.Header("Content-Type", info.ContentType)
	if info.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if _, err := io.Copy(c.Writer, reader); err != nil {
		slog.Error("failed to stream document", slog.String("appId", appID), slog.String("objectId", objectID), slog.String("error", err.Error()))
	}
}

func (h *HttpEndpoints) deleteDocument(c *gin.Context) {
	principal := getPrincipal(c)
	appID := c.Param("appID")

	objectID := c.Param("objectID")
	if !utils.IsURLSafe(objectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid object id"})
		return
	}

	app, err := appService.DeleteDocument(appID, objectID, principal, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}
