// Package api wires up the Gin HTTP router fronting a node's Core.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ringstore/internal/membership"
	"ringstore/internal/ringcore"
)

// Handler holds the dependencies a client-facing request needs.
type Handler struct {
	core         *ringcore.Core
	membership   *membership.Static
	pollInterval time.Duration
}

// NewHandler builds a Handler. pollInterval should be a fraction of the
// node's tick interval so a client request notices its transaction's
// decision on the very next tick or two.
func NewHandler(core *ringcore.Core, m *membership.Static, pollInterval time.Duration) *Handler {
	return &Handler{core: core, membership: m, pollInterval: pollInterval}
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	kv := r.Group("/kv")
	kv.GET("/:key", h.Get)
	kv.PUT("/:key", h.Put)
	kv.POST("/:key", h.Put)
	kv.PUT("/:key/update", h.Update)
	kv.DELETE("/:key", h.Delete)

	clusterGroup := r.Group("/cluster")
	clusterGroup.POST("/join", h.Join)
	clusterGroup.POST("/leave", h.Leave)
	clusterGroup.GET("/ring", h.Ring)

	r.GET("/health", h.Health)
}

// Put handles PUT/POST /kv/:key. Body: {"value": "<string>"}. It issues a
// CREATE; if the key already exists every replica will reject it and the
// transaction times out, so client code that wants upsert semantics should
// fall back to PUT-as-UPDATE via /kv/:key/update — this module keeps
// CREATE and UPDATE distinct the way the ring protocol itself does.
func (h *Handler) Put(c *gin.Context) {
	key := c.Param("key")

	var body struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := h.core.Create(key, body.Value, h.core.Now())
	h.awaitDecision(c, id, "create", key)
}

// Update handles PUT /kv/:key/update.
func (h *Handler) Update(c *gin.Context) {
	key := c.Param("key")

	var body struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := h.core.Update(key, body.Value, h.core.Now())
	h.awaitDecision(c, id, "update", key)
}

// Get handles GET /kv/:key.
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("key")
	id := h.core.Read(key, h.core.Now())

	found, decided, succeeded, value := h.waitFor(c, id)
	if !found {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction vanished"})
		return
	}
	if !decided {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "no quorum before deadline", "key": key})
		return
	}
	if !succeeded {
		c.JSON(http.StatusNotFound, gin.H{"error": "key not found", "key": key})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// Delete handles DELETE /kv/:key.
func (h *Handler) Delete(c *gin.Context) {
	key := c.Param("key")
	id := h.core.Delete(key, h.core.Now())
	h.awaitDecision(c, id, "delete", key)
}

func (h *Handler) awaitDecision(c *gin.Context, id int, op, key string) {
	found, decided, succeeded, _ := h.waitFor(c, id)
	if !found {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction vanished"})
		return
	}
	if !decided {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "no quorum before deadline", "op": op, "key": key})
		return
	}
	if !succeeded {
		c.JSON(http.StatusConflict, gin.H{"error": "quorum not reached", "op": op, "key": key})
		return
	}
	c.JSON(http.StatusOK, gin.H{"op": op, "key": key})
}

// waitFor polls TransactionResult until it is decided or the request
// context is done. Core only advances on its own tick loop, so this is a
// bounded busy-wait from the HTTP goroutine's point of view, not a block
// inside Core itself.
func (h *Handler) waitFor(c *gin.Context, id int) (found, decided, succeeded bool, value string) {
	for {
		found, decided, succeeded, value = h.core.TransactionResult(id)
		if !found || decided {
			return
		}
		select {
		case <-c.Request.Context().Done():
			return
		case <-time.After(h.pollInterval):
		}
	}
}

// Join handles POST /cluster/join. Body: {"id": <uint32>, "port": <uint16>}.
func (h *Handler) Join(c *gin.Context) {
	var body struct {
		ID   uint32 `json:"id" binding:"required"`
		Port uint16 `json:"port" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addr := ringcore.NewAddress(body.ID, body.Port)
	if err := h.membership.Join(addr); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"joined": addr.String()})
}

// Leave handles POST /cluster/leave. Body: {"id": <uint32>, "port": <uint16>}.
func (h *Handler) Leave(c *gin.Context) {
	var body struct {
		ID   uint32 `json:"id" binding:"required"`
		Port uint16 `json:"port" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addr := ringcore.NewAddress(body.ID, body.Port)
	if err := h.membership.Leave(addr); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"left": addr.String()})
}

// Ring handles GET /cluster/ring: the node's current ring view.
func (h *Handler) Ring(c *gin.Context) {
	ring := h.core.Ring()
	addrs := make([]string, len(ring))
	for i, n := range ring {
		addrs[i] = n.Addr.String()
	}
	c.JSON(http.StatusOK, gin.H{"self": h.core.Self().String(), "ring": addrs})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"node": h.core.Self().String(), "status": "ok"})
}
