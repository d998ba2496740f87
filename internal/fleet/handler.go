package fleet

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"helmhub/internal/auth"
	"helmhub/internal/feed"
	"helmhub/internal/tuning"
	"helmhub/pkg/models"
)

type Handler struct {
	Repo *Repo
	Hub  *feed.Hub
}

func NewHandler(repo *Repo, hub *feed.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/fleet", h.list)
	rg.POST("/fleet", h.addOrUpdate)
	rg.PUT("/fleet/:class_key", h.addOrUpdate)
	rg.DELETE("/fleet/:class_key", h.remove)
	rg.GET("/fleet/:class_key", h.getOne)
}

type upsertReq struct {
	ClassKey    string `json:"class_key"` // required for POST; any user spelling
	SailNumber  string `json:"sail_number"`
	BoatName    string `json:"boat_name"`
	HomeVenueID string `json:"home_venue_id"`
}

func (h *Handler) addOrUpdate(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	rawClass := strings.TrimSpace(req.ClassKey)
	if rawClass == "" {
		rawClass = strings.TrimSpace(c.Param("class_key"))
	}
	classKey := resolveClassKey(rawClass)
	if classKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_key required"})
		return
	}

	item := models.FleetItem{
		UserID:      claims.UserID,
		ClassKey:    classKey,
		SailNumber:  strings.TrimSpace(req.SailNumber),
		BoatName:    strings.TrimSpace(req.BoatName),
		HomeVenueID: strings.TrimSpace(req.HomeVenueID),
	}
	if err := h.Repo.Upsert(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	// Return canonical stored row including updated_at
	saved, err := h.Repo.Get(c.Request.Context(), claims.UserID, classKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch saved failed"})
		return
	}
	if saved == nil {
		// should not happen, but safe
		item.UpdatedAt = time.Now().UTC()
		saved = &item
	}

	if h.Hub != nil {
		go h.Hub.Broadcast(feed.NewFleetUpdate(*saved))
	}

	c.JSON(http.StatusOK, saved)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, limit, offset)
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

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	classKey := resolveClassKey(c.Param("class_key"))
	if classKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_key required"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), claims.UserID, classKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		go h.Hub.Broadcast(feed.NewFleetDelete(claims.UserID, classKey))
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	classKey := resolveClassKey(c.Param("class_key"))
	if classKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_key required"})
		return
	}

	it, err := h.Repo.Get(c.Request.Context(), claims.UserID, classKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if it == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, it)
}

// resolveClassKey funnels every user-supplied class spelling through
// the tuning normalizer and alias table so the fleet is stored under
// the same canonical keys the guide library uses.
func resolveClassKey(raw string) string {
	return tuning.ResolveClassKey(raw)
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
