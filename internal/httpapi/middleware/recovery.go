package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/common"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[panic] request_id=%s %s %s: %v\n%s",
					c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, rec, debug.Stack())
				common.AbortFail(c, http.StatusInternalServerError, 20000, "internal error")
			}
		}()
		c.Next()
	}
}
