package rest

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

func (s *HTTPServer) newRouter() *gin.Engine {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(fieldName)
		}
	})

	r := gin.New()
	r.Use(s.requestLogger(), gin.CustomRecovery(s.recoverPanic))

	r.NoRoute(func(c *gin.Context) {
		writeErrorCode(c, http.StatusNotFound, codeNotFound, "resource not found")
	})

	r.GET("/", s.welcome)
	r.GET("/ping", s.ping)

	api := r.Group(s.prefix)

	users := api.Group("/users")
	users.POST("/register", s.register)
	users.POST("/login", s.login)
	users.POST("/login/form", s.loginForm)
	users.GET("/me", s.authRequired(), s.me)

	tasks := api.Group("/tasks", s.authRequired())
	tasks.POST("", s.createTask)
	tasks.GET("", s.listTasks)
	tasks.GET("/:id", s.getTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)

	return r
}

// fieldName reports validation failures under the wire name of a field.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
