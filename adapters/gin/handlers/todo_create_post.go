package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

func HandleTodoPOST(svc *todo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req todo.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body")
			return
		}
		item, err := svc.Create(c.Request.Context(), userID(c), req)
		if err != nil {
			storeErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"item": item})
	}
}
