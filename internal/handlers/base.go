package handlers

import (
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User. Always set, nil when anonymous: a stale identity
	// must never linger in a context that outlives its request.
	user, _ := c.Get(middleware.CheckUserKey)
	obj["CurrentUser"] = user

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// cloneH shallow-copies a render context. Cached contexts are shared across
// requests and Render mutates its argument, so every request renders its own
// copy rather than writing into the shared map.
func cloneH(obj gin.H) gin.H {
	out := make(gin.H, len(obj)+2)
	for k, v := range obj {
		out[k] = v
	}
	return out
}

// RenderError renders the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}
