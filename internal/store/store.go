// Package store keeps the client's local copy of the contact list in step with
// the API. Local state only changes after the server confirms an operation.
package store

import (
	"context"
	"errors"
	"sync"

	"contacthub/internal/logger"
	"contacthub/internal/models"
	"contacthub/pkg/client"
)

const (
	MsgAdded      = "Contact added successfully!"
	MsgDeleted    = "Contact deleted successfully!"
	MsgLoadFailed = "Failed to load contacts"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("store closed")

// ContactAPI is the subset of *client.Client the store needs.
type ContactAPI interface {
	GetAll(ctx context.Context, params client.ListParams) (*client.ListResponse, error)
	Create(ctx context.Context, input client.ContactInput) (*client.ContactResponse, error)
	Delete(ctx context.Context, id string) (*client.ContactResponse, error)
}

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notification is a transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives one Notification per completed operation.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Result reports the outcome of AddContact and DeleteContact.
type Result struct {
	Success bool
	Error   string
}

// Store is safe for concurrent use. Network calls are made without holding
// the lock.
type Store struct {
	api      ContactAPI
	notifier Notifier

	mu       sync.Mutex
	contacts []models.Contact
	loading  bool
	err      string
	closed   bool
	subs     []chan struct{}
}

// New creates a Store. notifier may be nil.
func New(api ContactAPI, notifier Notifier) *Store {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return &Store{
		api:      api,
		notifier: notifier,
		contacts: []models.Contact{},
		loading:  true,
	}
}

// Init performs the initial fetch.
func (s *Store) Init(ctx context.Context) error {
	return s.Refetch(ctx)
}

// Refetch replaces the local list with the server's. A failed fetch keeps the
// previous list and records the error.
func (s *Store) Refetch(ctx context.Context) error {
	if !s.update(func() {
		s.loading = true
		s.err = ""
	}) {
		return ErrClosed
	}

	resp, err := s.api.GetAll(ctx, client.ListParams{})

	if err != nil {
		logger.GetLogger().Warnw("Failed to load contacts", "error", err)
		if !s.update(func() {
			s.loading = false
			s.err = errorMessage(err)
		}) {
			return ErrClosed
		}
		s.notifier.Notify(Notification{Level: LevelError, Message: MsgLoadFailed})
		return err
	}

	if !s.update(func() {
		s.loading = false
		s.contacts = append([]models.Contact{}, resp.Data...)
	}) {
		return ErrClosed
	}
	return nil
}

// AddContact creates a contact and, once the server accepts it, puts it at
// the front of the local list.
func (s *Store) AddContact(ctx context.Context, input client.ContactInput) Result {
	if s.isClosed() {
		return Result{Error: ErrClosed.Error()}
	}

	resp, err := s.api.Create(ctx, input)
	if err != nil {
		return s.fail(err)
	}

	if !s.update(func() {
		s.contacts = append([]models.Contact{resp.Data}, s.contacts...)
	}) {
		return Result{Error: ErrClosed.Error()}
	}
	s.notifier.Notify(Notification{Level: LevelSuccess, Message: MsgAdded})
	return Result{Success: true}
}

// DeleteContact deletes a contact and, once the server confirms, drops it
// from the local list.
func (s *Store) DeleteContact(ctx context.Context, id string) Result {
	if s.isClosed() {
		return Result{Error: ErrClosed.Error()}
	}

	if _, err := s.api.Delete(ctx, id); err != nil {
		return s.fail(err)
	}

	if !s.update(func() {
		kept := make([]models.Contact, 0, len(s.contacts))
		for _, c := range s.contacts {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		s.contacts = kept
	}) {
		return Result{Error: ErrClosed.Error()}
	}
	s.notifier.Notify(Notification{Level: LevelSuccess, Message: MsgDeleted})
	return Result{Success: true}
}

func (s *Store) fail(err error) Result {
	msg := errorMessage(err)
	s.notifier.Notify(Notification{Level: LevelError, Message: msg})
	return Result{Error: msg}
}

// Contacts returns a copy of the local list in server order.
func (s *Store) Contacts() []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Contact{}, s.contacts...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message of the last failed fetch, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Subscribe returns a channel that receives a value after every state change.
// Signals are coalesced; the channel is closed by Close.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

// Close releases subscribers. It is safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// update applies fn under the lock and signals subscribers. It reports false
// without calling fn once the store is closed.
func (s *Store) update(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return true
}

func errorMessage(err error) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return client.FallbackMessage
}
