package handlers

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"

	"quoteboard/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// MethodOverride lets HTML forms, which can only send GET and POST, reach
// the PATCH and DELETE routes. A POST carrying _method in the query string or
// in a urlencoded body is dispatched under that method. It has to wrap the
// router because routing is keyed on the method.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get("_method")
			if m == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				if err := r.ParseForm(); err == nil {
					m = r.PostForm.Get("_method")
				}
			}
			switch m = strings.ToUpper(strings.TrimSpace(m)); m {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequestID tags each request with an id, echoed in the response header and
// attached to log records through the request context.
func (h *Handler) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = xid.New().String()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger logs one line per request once the response is written.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			h.log.Warn(c.Request.Context(), nil, "request failed", fields...)
			return
		}
		h.log.Debug(c.Request.Context(), "request", fields...)
	}
}

// Recover turns a panic in a later handler into the 500 page instead of
// tearing down the connection.
func (h *Handler) Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := fmt.Errorf("panic: %v", rec)
			h.log.Error(c.Request.Context(), err, "[recover]",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			detail := "Something went wrong."
			if !h.production {
				detail = err.Error()
			}
			c.Abort()
			c.HTML(http.StatusInternalServerError, "error", gin.H{
				"Title":   "Error",
				"Message": "Internal Server Error",
				"Detail":  detail,
			})
		}()
		c.Next()
	}
}
