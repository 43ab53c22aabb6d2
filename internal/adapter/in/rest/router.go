package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(log *slog.Logger, posts PostService, comments CommentService) *gin.Engine {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	h := NewHandler(posts, comments)

	r.POST("/posts", h.CreatePost)
	r.GET("/posts", h.GetPosts)
	r.GET("/posts/:id", h.GetPost)
	r.PATCH("/posts/:id", h.UpdatePost)
	r.DELETE("/posts/:id", h.DeletePost)
	r.POST("/posts/:id/comments", h.CreateComment)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
