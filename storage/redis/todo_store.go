package redisstore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

// TodoStore persists items in Redis: one JSON value per (user, todo) pair
// plus a per-user set indexing the user's todo ids for listing.
type TodoStore struct {
	rdb   *redis.Client
	keyNS string
}

// NewTodoStore creates a store with the given key namespace. An empty
// namespace defaults to "todos:".
func NewTodoStore(rdb *redis.Client, keyPrefix string) *TodoStore {
	if keyPrefix == "" {
		keyPrefix = "todos:"
	}
	return &TodoStore{rdb: rdb, keyNS: keyPrefix}
}

func (s *TodoStore) itemKey(userID, todoID string) string { return s.keyNS + userID + ":" + todoID }
func (s *TodoStore) indexKey(userID string) string        { return s.keyNS + "user:" + userID }

func (s *TodoStore) get(ctx context.Context, userID, todoID string) (todo.Item, error) {
	val, err := s.rdb.Get(ctx, s.itemKey(userID, todoID)).Bytes()
	if err == redis.Nil {
		return todo.Item{}, todo.ErrNotFound
	}
	if err != nil {
		return todo.Item{}, err
	}
	var it todo.Item
	if err := json.Unmarshal(val, &it); err != nil {
		return todo.Item{}, err
	}
	return it, nil
}

func (s *TodoStore) put(ctx context.Context, it todo.Item) error {
	b, err := json.Marshal(it)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.itemKey(it.UserID, it.TodoID), b, 0).Err()
}

func (s *TodoStore) ListByUser(ctx context.Context, userID string) ([]todo.Item, error) {
	ids, err := s.rdb.SMembers(ctx, s.indexKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	items := make([]todo.Item, 0, len(ids))
	for _, id := range ids {
		it, err := s.get(ctx, userID, id)
		if err == todo.ErrNotFound {
			continue // index entry without a value, skip
		}
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (s *TodoStore) Create(ctx context.Context, item todo.Item) error {
	if err := s.put(ctx, item); err != nil {
		return err
	}
	return s.rdb.SAdd(ctx, s.indexKey(item.UserID), item.TodoID).Err()
}

func (s *TodoStore) Update(ctx context.Context, userID, todoID string, upd todo.UpdateRequest) (todo.Item, error) {
	it, err := s.get(ctx, userID, todoID)
	if err != nil {
		return todo.Item{}, err
	}
	it.Name = upd.Name
	it.DueDate = upd.DueDate
	it.Done = upd.Done
	if err := s.put(ctx, it); err != nil {
		return todo.Item{}, err
	}
	return it, nil
}

func (s *TodoStore) Delete(ctx context.Context, userID, todoID string) error {
	n, err := s.rdb.Del(ctx, s.itemKey(userID, todoID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return todo.ErrNotFound
	}
	return s.rdb.SRem(ctx, s.indexKey(userID), todoID).Err()
}

func (s *TodoStore) SetAttachmentURL(ctx context.Context, userID, todoID, url string) error {
	it, err := s.get(ctx, userID, todoID)
	if err != nil {
		return err
	}
	it.AttachmentURL = url
	return s.put(ctx, it)
}
