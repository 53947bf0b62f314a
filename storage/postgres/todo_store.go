package postgresstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/alfredasare/cloud-dev-final-project/todo"
)

// Open connects a bun DB over a pgx pool.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqldb := stdlib.OpenDBFromPool(pool)
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

type todoRow struct {
	bun.BaseModel `bun:"table:todos"`

	UserID        string    `bun:"user_id,pk"`
	TodoID        string    `bun:"todo_id,pk,type:uuid"`
	Name          string    `bun:"name"`
	DueDate       string    `bun:"due_date"`
	CreatedAt     time.Time `bun:"created_at"`
	Done          bool      `bun:"done"`
	AttachmentURL *string   `bun:"attachment_url"`
}

func (r todoRow) item() todo.Item {
	it := todo.Item{
		UserID:    r.UserID,
		TodoID:    r.TodoID,
		Name:      r.Name,
		DueDate:   r.DueDate,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		Done:      r.Done,
	}
	if r.AttachmentURL != nil {
		it.AttachmentURL = *r.AttachmentURL
	}
	return it
}

// TodoStore persists items in a single todos table keyed (user_id, todo_id).
type TodoStore struct {
	db *bun.DB
}

// NewTodoStore builds a store over an open bun DB.
func NewTodoStore(db *bun.DB) *TodoStore {
	return &TodoStore{db: db}
}

func (s *TodoStore) ListByUser(ctx context.Context, userID string) ([]todo.Item, error) {
	var rows []todoRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]todo.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item())
	}
	return items, nil
}

func (s *TodoStore) Create(ctx context.Context, item todo.Item) error {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}
	row := todoRow{
		UserID:    item.UserID,
		TodoID:    item.TodoID,
		Name:      item.Name,
		DueDate:   item.DueDate,
		CreatedAt: createdAt,
		Done:      item.Done,
	}
	_, err = s.db.NewInsert().Model(&row).Exec(ctx)
	return err
}

func (s *TodoStore) Update(ctx context.Context, userID, todoID string, upd todo.UpdateRequest) (todo.Item, error) {
	row := todoRow{Name: upd.Name, DueDate: upd.DueDate, Done: upd.Done}
	err := s.db.NewUpdate().
		Model(&row).
		Column("name", "due_date", "done").
		Where("user_id = ? AND todo_id = ?", userID, todoID).
		Returning("*").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.Item{}, todo.ErrNotFound
	}
	if err != nil {
		return todo.Item{}, err
	}
	return row.item(), nil
}

func (s *TodoStore) Delete(ctx context.Context, userID, todoID string) error {
	res, err := s.db.NewDelete().
		Model((*todoRow)(nil)).
		Where("user_id = ? AND todo_id = ?", userID, todoID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return todo.ErrNotFound
	}
	return nil
}

func (s *TodoStore) SetAttachmentURL(ctx context.Context, userID, todoID, url string) error {
	res, err := s.db.NewUpdate().
		Model((*todoRow)(nil)).
		Set("attachment_url = ?", url).
		Where("user_id = ? AND todo_id = ?", userID, todoID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return todo.ErrNotFound
	}
	return nil
}
