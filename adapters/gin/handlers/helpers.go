package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

func userID(c *gin.Context) string {
	return c.GetString("auth.user_id")
}

func badRequest(c *gin.Context, code string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": code})
}

// storeErr translates storage failures at the HTTP boundary: not-found maps
// to 404, everything else to a generic server error.
func storeErr(c *gin.Context, err error) {
	if errors.Is(err, todo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
