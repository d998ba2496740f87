package tuning

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/classes", h.listClasses)         // GET /tuning/classes
	rg.GET("/guides/:class", h.guidesByClass) // GET /tuning/guides/:class
}

func (h *Handler) listClasses(c *gin.Context) {
	lib := AllDefaultGuides()

	type classInfo struct {
		ClassKey string `json:"class_key"`
		Guides   int    `json:"guides"`
	}

	out := make([]classInfo, 0, len(lib))
	for key, guides := range lib {
		out = append(out, classInfo{ClassKey: key, Guides: len(guides)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassKey < out[j].ClassKey })

	c.JSON(http.StatusOK, gin.H{
		"total": len(out),
		"items": out,
	})
}

// guidesByClass never 404s: an unknown class is an empty list, matching
// the library contract.
func (h *Handler) guidesByClass(c *gin.Context) {
	raw := c.Param("class")
	guides := DefaultGuidesForClass(raw)

	c.JSON(http.StatusOK, gin.H{
		"class_key": ResolveClassKey(raw),
		"total":     len(guides),
		"items":     guides,
	})
}
