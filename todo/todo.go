// Package todo holds the task-tracking domain model and business layer.
package todo

import "errors"

// ErrNotFound fires when a user/todo pair does not exist in the store.
var ErrNotFound = errors.New("todo: item not found")

// Item is a single task owned by a user. CreatedAt is an ISO-8601 timestamp.
type Item struct {
	UserID        string `json:"userId"`
	TodoID        string `json:"todoId"`
	Name          string `json:"name"`
	DueDate       string `json:"dueDate"`
	CreatedAt     string `json:"createdAt"`
	Done          bool   `json:"done"`
	AttachmentURL string `json:"attachmentUrl,omitempty"`
}

// CreateRequest carries the caller-supplied fields of a new item.
type CreateRequest struct {
	Name    string `json:"name" binding:"required"`
	DueDate string `json:"dueDate"`
}

// UpdateRequest overwrites exactly these three fields on an existing item.
type UpdateRequest struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}
