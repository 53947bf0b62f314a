package todogin

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alfredasare/cloud-dev-final-project/adapters/gin/handlers"
	"github.com/alfredasare/cloud-dev-final-project/auth"
	"github.com/alfredasare/cloud-dev-final-project/todo"
)

// Rate-limit bucket names for the todo endpoints.
const (
	RLTodosList       = "todos:list"
	RLTodosCreate     = "todos:create"
	RLTodosUpdate     = "todos:update"
	RLTodosDelete     = "todos:delete"
	RLTodosAttachment = "todos:attachment"
)

// Router assembles the todo API. Every /todos route requires a verified
// bearer token; rl may be nil to disable rate limiting.
func Router(svc *todo.Service, verifier *auth.Verifier, rl RateLimiter, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS())

	todos := r.Group("/todos", AuthRequired(verifier, log))
	todos.GET("", RateLimit(rl, RLTodosList), handlers.HandleTodosGET(svc))
	todos.POST("", RateLimit(rl, RLTodosCreate), handlers.HandleTodoPOST(svc))
	todos.PATCH("/:todoId", RateLimit(rl, RLTodosUpdate), handlers.HandleTodoPATCH(svc))
	todos.DELETE("/:todoId", RateLimit(rl, RLTodosDelete), handlers.HandleTodoDELETE(svc))
	todos.POST("/:todoId/attachment", RateLimit(rl, RLTodosAttachment), handlers.HandleTodoAttachmentPOST(svc))

	return r
}
