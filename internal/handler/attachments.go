package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"zellalite/internal/auth"
	"zellalite/internal/service"
)

type AttachmentHandler struct {
	Attachments *service.AttachmentService
}

func (h *AttachmentHandler) Register(r gin.IRoutes) {
	r.GET("/api/trades/:id/attachments", h.list)
	r.POST("/api/trades/:id/attachments", h.upload)
	r.GET("/api/attachments/:attachment_id", h.download)
	r.DELETE("/api/attachments/:attachment_id", h.remove)
}

// @Summary List attachments for a trade
// @Tags attachments
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/{id}/attachments [get]
func (h *AttachmentHandler) list(c *gin.Context) {
	tradeID := uint64Param(c, "id")
	if tradeID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	items, err := h.Attachments.List(c.Request.Context(), auth.UserID(c), tradeID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Upload an attachment
// @Tags attachments
// @Accept multipart/form-data
// @Param file formData file true "file to attach"
// @Success 201 {object} handler.apiResponse
// @Router /api/trades/{id}/attachments [post]
func (h *AttachmentHandler) upload(c *gin.Context) {
	tradeID := uint64Param(c, "id")
	if tradeID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		Error(c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer file.Close()
	contents, err := io.ReadAll(file)
	if err != nil {
		Error(c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	att, err := h.Attachments.Save(c.Request.Context(), auth.UserID(c), tradeID,
		filepath.Base(fileHeader.Filename), fileHeader.Header.Get("Content-Type"), contents)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, att)
}

// @Summary Download an attachment
// @Tags attachments
// @Success 200 {file} binary
// @Router /api/attachments/{attachment_id} [get]
func (h *AttachmentHandler) download(c *gin.Context) {
	attachmentID := uint64Param(c, "attachment_id")
	if attachmentID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	att, err := h.Attachments.Get(c.Request.Context(), auth.UserID(c), attachmentID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if _, err := os.Stat(att.Path); err != nil {
		Error(c, http.StatusNotFound, "attachment file missing", nil)
		return
	}
	c.FileAttachment(att.Path, att.Filename)
}

// @Summary Delete an attachment
// @Tags attachments
// @Success 200 {object} handler.apiResponse
// @Router /api/attachments/{attachment_id} [delete]
func (h *AttachmentHandler) remove(c *gin.Context) {
	attachmentID := uint64Param(c, "attachment_id")
	if attachmentID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Attachments.Delete(c.Request.Context(), auth.UserID(c), attachmentID); err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": attachmentID}, nil)
}
