package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

func HandleTodoAttachmentPOST(svc *todo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID := c.Param("todoId")
		if strings.TrimSpace(todoID) == "" {
			badRequest(c, "missing_todo_id")
			return
		}
		url, err := svc.AttachmentUploadURL(c.Request.Context(), userID(c), todoID)
		if err != nil {
			storeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"uploadUrl": url})
	}
}
