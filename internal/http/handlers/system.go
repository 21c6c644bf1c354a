package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	intconfig "hoponhub/internal/config"
	"hoponhub/internal/repositories"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

// Health reports database reachability and which tables still need
// /api/init-db.
func Health(c *gin.Context) {
	ctx := c.Request.Context()
	if err := intconfig.EnsureDB(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
		return
	}
	missing := repositories.MissingTables(ctx, intconfig.DB)
	status := "ok"
	if len(missing) > 0 {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "database": "ok", "missing_tables": missing})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
