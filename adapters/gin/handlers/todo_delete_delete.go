package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

func HandleTodoDELETE(svc *todo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID := c.Param("todoId")
		if strings.TrimSpace(todoID) == "" {
			badRequest(c, "missing_todo_id")
			return
		}
		if err := svc.Delete(c.Request.Context(), userID(c), todoID); err != nil {
			storeErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
