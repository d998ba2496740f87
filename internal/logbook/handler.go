package logbook

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"helmhub/internal/auth"
	"helmhub/internal/tuning"
	"helmhub/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logbook", h.list)
	rg.POST("/logbook", h.add)
}

type addReq struct {
	VenueID  string `json:"venue_id"`
	ClassKey string `json:"class_key"`
	WindKts  *int   `json:"wind_kts,omitempty"`
	Notes    string `json:"notes"`
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	venueID := strings.TrimSpace(req.VenueID)
	if venueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "venue_id required"})
		return
	}
	classKey := tuning.ResolveClassKey(req.ClassKey)
	if classKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_key required"})
		return
	}
	if req.WindKts != nil && (*req.WindKts < 0 || *req.WindKts > 99) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wind_kts out of range"})
		return
	}

	entry := models.LogEntry{
		UserID:   claims.UserID,
		VenueID:  venueID,
		ClassKey: classKey,
		WindKts:  req.WindKts,
		Notes:    strings.TrimSpace(req.Notes),
		At:       time.Now().UTC(),
	}

	if err := h.Repo.Add(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	venueID := strings.TrimSpace(c.Query("venue_id"))
	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, venueID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
