package venues

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"helmhub/internal/feed"
	"helmhub/internal/notify"
)

type Handler struct {
	Repo   *Repo
	Hub    *feed.Hub
	Notify *notify.Server
}

func NewHandler(repo *Repo, hub *feed.Hub, notifySrv *notify.Server) *Handler {
	return &Handler{Repo: repo, Hub: hub, Notify: notifySrv}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)        // GET /venues
	rg.GET("/:id", h.getByID) // GET /venues/:id
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/venues/:id/verify", h.verify)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Q:            c.Query("q"),
		Country:      c.Query("country"),
		VenueType:    c.Query("type"),
		VerifiedOnly: c.Query("verified") == "true",
		Limit:        parseInt(c.Query("limit"), 20),
		Offset:       parseInt(c.Query("offset"), 0),
	}

	// bbox=minLat,minLng,maxLat,maxLng
	if bbox := strings.TrimSpace(c.Query("bbox")); bbox != "" {
		parts := strings.Split(bbox, ",")
		if len(parts) != 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bbox must be minLat,minLng,maxLat,maxLng"})
			return
		}
		vals := make([]float64, 4)
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bbox value"})
				return
			}
			vals[i] = f
		}
		q.Bounded = true
		q.MinLat, q.MinLng, q.MaxLat, q.MaxLng = vals[0], vals[1], vals[2], vals[3]
	}

	total, err := h.Repo.Count(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}

	items, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")
	v, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) verify(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	ok, err := h.Repo.SetVerified(c.Request.Context(), id, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verify failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		go h.Hub.Broadcast(feed.NewVenueVerified(id))
	}
	if h.Notify != nil {
		go h.Notify.BroadcastVenueVerified(id)
	}

	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
