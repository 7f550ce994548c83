package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"contacthub/internal/logger"
	"contacthub/internal/metrics"
	"contacthub/internal/models"
	"contacthub/internal/repositories"
	"contacthub/internal/services"
	"contacthub/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

// MockContactRepository is a mock implementation of repositories.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) List(ctx context.Context, opts models.ListOptions) ([]models.Contact, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contact), args.Error(1)
}

func (m *MockContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) (*models.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishContactEvent(evt rabbitmq.ContactEvent) error {
	args := m.Called(evt)
	return args.Error(0)
}

func TestContactService_ListContacts_NormalizesOptions(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo, nil, nil)

	expected := []models.Contact{{ID: "1", Name: "Alice"}}
	mockRepo.On("List", mock.Anything, models.ListOptions{Search: "al", SortBy: models.SortByCreatedAt, Order: models.SortDesc}).
		Return(expected, nil).Once()

	contacts, err := service.ListContacts(context.Background(), models.ListOptions{Search: "al", SortBy: "nope"})

	assert.NoError(t, err)
	assert.Equal(t, expected, contacts)
	mockRepo.AssertExpectations(t)
}

func TestContactService_CreateContact(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockPub := new(MockPublisher)
	m := metrics.New()
	service := services.NewContactService(mockRepo, mockPub, m)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Contact) bool {
		return c.Name == "Alice" && c.Email == "alice@example.com" && c.Phone == "555 1234" && c.Message == ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Contact).ID = "generated-id"
	}).Return(nil).Once()
	mockPub.On("PublishContactEvent", mock.MatchedBy(func(evt rabbitmq.ContactEvent) bool {
		return evt.Type == rabbitmq.EventContactCreated && evt.ContactID == "generated-id"
	})).Return(nil).Once()

	contact, err := service.CreateContact(context.Background(), models.ContactInput{
		Name:  "  Alice ",
		Email: "Alice@Example.com",
		Phone: " 555 1234 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "generated-id", contact.ID)
	assert.Equal(t, "alice@example.com", contact.Email)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ContactsCreated))
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestContactService_CreateContact_ValidationFailureSkipsStore(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo, nil, nil)

	contact, err := service.CreateContact(context.Background(), models.ContactInput{
		Name:  "J",
		Email: "not-an-email",
		Phone: "+1 (555) 123-4567",
	})

	assert.Nil(t, contact)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Name must be at least 2 characters",
		"Please provide a valid email address",
	}, verr.Messages())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContactService_CreateContact_StoreFailure(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockPub := new(MockPublisher)
	service := services.NewContactService(mockRepo, mockPub, nil)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("database error")).Once()

	_, err := service.CreateContact(context.Background(), models.ContactInput{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "5551234",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockPub.AssertNotCalled(t, "PublishContactEvent", mock.Anything)
}

func TestContactService_CreateContact_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockPub := new(MockPublisher)
	service := services.NewContactService(mockRepo, mockPub, nil)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	mockPub.On("PublishContactEvent", mock.Anything).Return(errors.New("broker down")).Once()

	contact, err := service.CreateContact(context.Background(), models.ContactInput{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "5551234",
	})

	assert.NoError(t, err)
	assert.NotNil(t, contact)
	mockPub.AssertExpectations(t)
}

func TestContactService_DeleteContact(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockPub := new(MockPublisher)
	m := metrics.New()
	service := services.NewContactService(mockRepo, mockPub, m)

	deleted := &models.Contact{ID: "1", Name: "Alice"}
	mockRepo.On("Delete", mock.Anything, "1").Return(deleted, nil).Once()
	mockPub.On("PublishContactEvent", mock.MatchedBy(func(evt rabbitmq.ContactEvent) bool {
		return evt.Type == rabbitmq.EventContactDeleted && evt.ContactID == "1"
	})).Return(nil).Once()

	contact, err := service.DeleteContact(context.Background(), " 1 ")
	assert.NoError(t, err)
	assert.Equal(t, deleted, contact)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ContactsDeleted))

	mockRepo.On("Delete", mock.Anything, "2").Return(nil, fmt.Errorf("contact with ID 2: %w", repositories.ErrNotFound)).Once()
	contact, err = service.DeleteContact(context.Background(), "2")
	assert.Nil(t, contact)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}
