package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/services"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

type EntryHandler struct {
	svc services.EntryService
}

func NewEntryHandler(svc services.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

type ProcessEntryRequest struct {
	Text string `json:"text"`
}

// Process runs one transcript through the pipeline. Empty text is allowed;
// the pipeline handles it.
func (h *EntryHandler) Process(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ProcessEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EntryHandler.Process", "invalid request body", err))
		return
	}

	res, err := h.svc.Process(c.Request.Context(), userID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EntryHandler) Recent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := 5
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	rows, err := h.svc.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	total, err := h.svc.Count(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": rows,
		"total":   total,
	})
}
