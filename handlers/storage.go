package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"slotwise/middleware"
	"slotwise/services/provider"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles provider portfolio image endpoints.
type PortfolioHandler struct {
	Svc provider.ProviderService
}

// NewPortfolioHandler creates a new PortfolioHandler instance.
func NewPortfolioHandler(svc provider.ProviderService) *PortfolioHandler {
	return &PortfolioHandler{Svc: svc}
}

// UploadPortfolioImageHandler accepts a multipart image and adds it to the
// caller's portfolio.
func (h *PortfolioHandler) UploadPortfolioImageHandler(c *gin.Context) {
	providerID := c.Param("id")
	if middleware.CallerID(c) != providerID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own portfolio")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file", err.Error())
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.Svc.AddPortfolioImage(c.Request.Context(), providerID, tempFilePath)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload portfolio image", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "image uploaded successfully",
		"publicId": publicID,
	})
}

// DeletePortfolioImageHandler removes an image from the caller's portfolio.
func (h *PortfolioHandler) DeletePortfolioImageHandler(c *gin.Context) {
	providerID := c.Param("id")
	if middleware.CallerID(c) != providerID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own portfolio")
		return
	}

	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing publicId", "expected ?publicId=<hosted image id>")
		return
	}

	if err := h.Svc.RemovePortfolioImage(c.Request.Context(), providerID, publicID); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to delete portfolio image", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
