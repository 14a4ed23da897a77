package common

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Fail writes the error body every JSON endpoint shares. code is the
// business error code: 1xxxx bad input, 2xxxx server side, 4xxxx/5xxxx the
// HTTP status followed by a sequence number.
func Fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{"code": code, "error": msg})
}

// AbortFail is Fail for middleware: the handler chain stops here.
func AbortFail(c *gin.Context, httpStatus int, code int, msg string) {
	c.AbortWithStatusJSON(httpStatus, gin.H{"code": code, "error": msg})
}

var tagNameOnce sync.Once

// UseJSONFieldNames makes binding errors report json keys instead of Go
// field names.
func UseJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// ValidationMessage turns a binding error into a message naming the
// offending field, e.g. "Missing 'title' in request body.".
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		names := make([]string, 0, len(verrs))
		for _, e := range verrs {
			names = append(names, "'"+e.Field()+"'")
		}
		if verrs[0].Tag() == "required" {
			return fmt.Sprintf("Missing %s in request body.", strings.Join(names, " or "))
		}
		return fmt.Sprintf("Invalid %s in request body.", strings.Join(names, ", "))
	}
	return "Invalid JSON in request body."
}
