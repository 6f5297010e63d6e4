package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tantasui/decentradocs/internal/pkg/response"
	"github.com/tantasui/decentradocs/internal/service"
)

type QueryHandler struct {
	rag *service.RAGService
}

func NewQueryHandler(rag *service.RAGService) *QueryHandler {
	return &QueryHandler{rag: rag}
}

type queryRequest struct {
	Question    string   `json:"question"`
	DocumentIDs []string `json:"document_ids"`
	TopK        int      `json:"top_k"`
}

func (h *QueryHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	answer, err := h.rag.Query(c.Request.Context(), req.Question, req.DocumentIDs, req.TopK)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, answer)
}
