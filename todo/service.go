package todo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store persists items keyed by (userId, todoId).
type Store interface {
	// ListByUser returns every item owned by the user, no pagination.
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	// Create persists a fully populated item.
	Create(ctx context.Context, item Item) error
	// Update overwrites name, dueDate and done and returns the updated item.
	// Returns ErrNotFound if the pair does not exist.
	Update(ctx context.Context, userID, todoID string, upd UpdateRequest) (Item, error)
	// Delete removes the item. Returns ErrNotFound if the pair does not exist.
	Delete(ctx context.Context, userID, todoID string) error
	// SetAttachmentURL records the public object URL on the item.
	SetAttachmentURL(ctx context.Context, userID, todoID, url string) error
}

// Signer issues time-limited upload URLs for attachment objects.
type Signer interface {
	// SignedUploadURL returns a pre-signed putObject URL for the key.
	SignedUploadURL(ctx context.Context, key string) (string, error)
	// ObjectURL returns the public URL the object will have once uploaded.
	ObjectURL(key string) string
}

// Service is the business layer over the store and the attachment signer.
type Service struct {
	store  Store
	signer Signer
	log    *logrus.Logger
}

// NewService wires the business layer. If log is nil, the logrus standard
// logger is used.
func NewService(store Store, signer Signer, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, signer: signer, log: log}
}

// List returns all of the user's items.
func (s *Service) List(ctx context.Context, userID string) ([]Item, error) {
	s.log.WithField("userId", userID).Info("getting todos")
	return s.store.ListByUser(ctx, userID)
}

// Create assigns a fresh id and creation timestamp, marks the item not done
// and persists it.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Item, error) {
	item := Item{
		UserID:    userID,
		TodoID:    uuid.NewString(),
		Name:      req.Name,
		DueDate:   req.DueDate,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Done:      false,
	}
	s.log.WithFields(logrus.Fields{"userId": userID, "todoId": item.TodoID}).Info("creating todo")
	if err := s.store.Create(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Update overwrites name, dueDate and done on the item.
func (s *Service) Update(ctx context.Context, userID, todoID string, req UpdateRequest) (Item, error) {
	s.log.WithFields(logrus.Fields{"userId": userID, "todoId": todoID}).Info("updating todo")
	return s.store.Update(ctx, userID, todoID, req)
}

// Delete removes the item.
func (s *Service) Delete(ctx context.Context, userID, todoID string) error {
	s.log.WithFields(logrus.Fields{"userId": userID, "todoId": todoID}).Info("deleting todo")
	return s.store.Delete(ctx, userID, todoID)
}

// AttachmentUploadURL records the attachment's eventual object URL on the
// item, then returns a pre-signed upload URL for it. The object key is the
// todo id.
func (s *Service) AttachmentUploadURL(ctx context.Context, userID, todoID string) (string, error) {
	s.log.WithFields(logrus.Fields{"userId": userID, "todoId": todoID}).Info("creating attachment upload url")
	if err := s.store.SetAttachmentURL(ctx, userID, todoID, s.signer.ObjectURL(todoID)); err != nil {
		return "", err
	}
	return s.signer.SignedUploadURL(ctx, todoID)
}
