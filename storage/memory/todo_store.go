package memorystore

import (
	"context"
	"sync"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

// TodoStore is an in-memory implementation of todo.Store for tests and
// single-node development.
type TodoStore struct {
	mu    sync.Mutex
	items map[string]map[string]todo.Item // userID -> todoID -> item
}

// NewTodoStore creates an empty in-memory store.
func NewTodoStore() *TodoStore {
	return &TodoStore{items: make(map[string]map[string]todo.Item)}
}

func (s *TodoStore) ListByUser(ctx context.Context, userID string) ([]todo.Item, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]todo.Item, 0, len(s.items[userID]))
	for _, it := range s.items[userID] {
		out = append(out, it)
	}
	return out, nil
}

func (s *TodoStore) Create(ctx context.Context, item todo.Item) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items[item.UserID] == nil {
		s.items[item.UserID] = make(map[string]todo.Item)
	}
	s.items[item.UserID][item.TodoID] = item
	return nil
}

func (s *TodoStore) Update(ctx context.Context, userID, todoID string, upd todo.UpdateRequest) (todo.Item, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[userID][todoID]
	if !ok {
		return todo.Item{}, todo.ErrNotFound
	}
	it.Name = upd.Name
	it.DueDate = upd.DueDate
	it.Done = upd.Done
	s.items[userID][todoID] = it
	return it, nil
}

func (s *TodoStore) Delete(ctx context.Context, userID, todoID string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[userID][todoID]; !ok {
		return todo.ErrNotFound
	}
	delete(s.items[userID], todoID)
	return nil
}

func (s *TodoStore) SetAttachmentURL(ctx context.Context, userID, todoID, url string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[userID][todoID]
	if !ok {
		return todo.ErrNotFound
	}
	it.AttachmentURL = url
	s.items[userID][todoID] = it
	return nil
}
