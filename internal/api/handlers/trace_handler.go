package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mongorepo "github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/mongo"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

// TraceHandler exposes pipeline diagnostics to admins.
type TraceHandler struct {
	traces mongorepo.TraceRepository
}

func NewTraceHandler(traces mongorepo.TraceRepository) *TraceHandler {
	return &TraceHandler{traces: traces}
}

func (h *TraceHandler) ListByUser(c *gin.Context) {
	if h.traces == nil {
		writeError(c, utils.E(utils.CodeUnavailable, "TraceHandler.ListByUser", "trace store not configured", nil))
		return
	}

	userID := c.Param("user_id")
	if userID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TraceHandler.ListByUser", "user_id is required", nil))
		return
	}

	limit := int64(100)
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	rows, err := h.traces.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "TraceHandler.ListByUser", "failed to list traces", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"traces":  rows,
	})
}
