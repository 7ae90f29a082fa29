package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	// StaticDir is served under /static/. Empty disables static files.
	StaticDir     string
	SessionName   string
	SessionSecret string
}

// Router builds the gin engine and wraps it with MethodOverride.
func (h *Handler) Router(rc RouterConfig) http.Handler {
	if rc.SessionName == "" {
		rc.SessionName = "quoteboard"
	}

	r := gin.New()
	r.SetHTMLTemplate(h.tpls)

	r.Use(h.RequestID(), h.RequestLogger(), h.Recover())
	r.Use(sessions.Sessions(rc.SessionName, newCookieStore(rc.SessionSecret)))
	if rc.StaticDir != "" {
		r.Use(static.Serve("/static", static.LocalFile(rc.StaticDir, false)))
	}

	r.GET("/", h.Index)
	r.GET("/healthz", h.Health)

	r.GET("/posts", h.ListPosts)
	r.GET("/posts/new", h.NewPost)
	r.POST("/posts", h.CreatePost)
	r.GET("/posts/edit/:id", h.EditPost)
	r.PATCH("/posts/:id", h.UpdatePost)
	r.DELETE("/posts/:id", h.DeletePost)
	r.GET("/posts/show/:id", h.ShowPost)
	r.GET("/posts/back", h.Back)
	r.GET("/posts/contact", h.ContactForm)
	r.POST("/contact", h.SubmitContact)

	r.NoRoute(h.NotFound)

	return MethodOverride(r)
}
