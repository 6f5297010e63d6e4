package handler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tantasui/decentradocs/internal/filestore"
	"github.com/tantasui/decentradocs/internal/pkg/response"
	"github.com/tantasui/decentradocs/internal/service"
)

type DocumentHandler struct {
	rag            *service.RAGService
	blobs          filestore.Store
	maxUploadBytes int64
}

func NewDocumentHandler(rag *service.RAGService, blobs filestore.Store, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{rag: rag, blobs: blobs, maxUploadBytes: maxUploadBytes}
}

// Upload receives a multipart document, saves the raw bytes under their
// content hash and ingests the text into the vector store. Every extra
// form field travels along as caller metadata on the chunks.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_file", "file is required")
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds "+formatUploadLimit(h.maxUploadBytes))
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_file", "failed to open file")
		return
	}
	defer opened.Close()
	data, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_file", "failed to read file")
		return
	}

	metadata := map[string]string{}
	if c.Request.MultipartForm != nil {
		for key, values := range c.Request.MultipartForm.Value {
			if len(values) > 0 {
				metadata[key] = values[0]
			}
		}
	}

	// The blob's content hash doubles as the document id.
	sum := sha256.Sum256(data)
	docID := hex.EncodeToString(sum[:])

	if err := h.blobs.Save(c.Request.Context(), docID, bytes.NewReader(data), int64(len(data))); err != nil {
		response.Error(c, http.StatusInternalServerError, "upload_failed", "failed to store file")
		return
	}

	result, err := h.rag.Ingest(c.Request.Context(), docID, file.Filename, metadata, data)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// Delete removes a document's chunks. Deleting an absent id succeeds
// with a zero count.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID := c.Param("id")
	removed := h.rag.Delete(c.Request.Context(), docID)
	response.Success(c, gin.H{"document_id": docID, "chunks_removed": removed})
}

// File streams the original uploaded bytes back from the blob store.
func (h *DocumentHandler) File(c *gin.Context) {
	docID := c.Param("id")
	reader, err := h.blobs.Open(c.Request.Context(), docID)
	if err != nil {
		handleError(c, err)
		return
	}
	defer reader.Close()
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (h *DocumentHandler) Stats(c *gin.Context) {
	response.Success(c, h.rag.Stats(c.Request.Context()))
}

func formatUploadLimit(bytes int64) string {
	const mb = 1024 * 1024
	if bytes <= 0 {
		return "0MB"
	}
	value := bytes / mb
	if value <= 0 {
		value = 1
	}
	return strconv.FormatInt(value, 10) + "MB"
}
