package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

func HandleTodosGET(svc *todo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), userID(c))
		if err != nil {
			storeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
