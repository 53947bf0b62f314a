package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

func HandleTodoPATCH(svc *todo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID := c.Param("todoId")
		if strings.TrimSpace(todoID) == "" {
			badRequest(c, "missing_todo_id")
			return
		}
		var req todo.UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body")
			return
		}
		item, err := svc.Update(c.Request.Context(), userID(c), todoID, req)
		if err != nil {
			storeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}
