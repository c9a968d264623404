package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"feedback-service/internal/domain/feedback"
	"feedback-service/internal/domain/session"
	domain "feedback-service/internal/domain/user"
	apperrors "feedback-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockFeedbackLister is a mock implementation of the FeedbackLister interface
type MockFeedbackLister struct {
	mock.Mock
}

func (m *MockFeedbackLister) ListByOwner(ctx context.Context, username string) ([]feedback.Feedback, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Feedback), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository, *MockFeedbackLister) {
	mockRepo := new(MockRepository)
	mockLister := new(MockFeedbackLister)
	svc := New(mockRepo, mockLister, zaptest.NewLogger(t))
	return svc, mockRepo, mockLister
}

// ==================== GET PROFILE TESTS ====================

func TestGetProfile_Success(t *testing.T) {
	svc, mockRepo, mockLister := setupTestService(t)
	ctx := context.Background()

	u := &domain.User{Username: "user1", Email: "user1@email.com", FirstName: "asdf", LastName: "asdf"}
	items := []feedback.Feedback{{ID: 1, Title: "feedback1", Content: "abcd", Username: "user1"}}
	mockRepo.On("GetByUsername", ctx, "user1").Return(u, nil)
	mockLister.On("ListByOwner", ctx, "user1").Return(items, nil)

	profile, err := svc.GetProfile(ctx, session.Authenticated("user1"), "user1")

	require.NoError(t, err)
	assert.Equal(t, u, profile.User)
	assert.Equal(t, items, profile.Feedbacks)
	mockRepo.AssertExpectations(t)
	mockLister.AssertExpectations(t)
}

func TestGetProfile_Unauthorized(t *testing.T) {
	tests := []struct {
		name     string
		identity session.Identity
	}{
		{name: "anonymous", identity: session.Anonymous()},
		{name: "other user", identity: session.Authenticated("user2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockLister := setupTestService(t)

			profile, err := svc.GetProfile(context.Background(), tt.identity, "user1")

			assert.Nil(t, profile)
			var unauthorized *apperrors.UnauthorizedError
			assert.ErrorAs(t, err, &unauthorized)
			mockRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
			mockLister.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
		})
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, mockRepo, mockLister := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByUsername", ctx, "user1").Return(nil, apperrors.NewNotFoundError("user", ""))

	profile, err := svc.GetProfile(ctx, session.Authenticated("user1"), "user1")

	assert.Nil(t, profile)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockLister.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
}

func TestGetProfile_ListError(t *testing.T) {
	svc, mockRepo, mockLister := setupTestService(t)
	ctx := context.Background()

	listErr := errors.New("db down")
	mockRepo.On("GetByUsername", ctx, "user1").Return(&domain.User{Username: "user1"}, nil)
	mockLister.On("ListByOwner", ctx, "user1").Return(nil, listErr)

	profile, err := svc.GetProfile(ctx, session.Authenticated("user1"), "user1")

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, listErr)
}

// ==================== DELETE USER TESTS ====================

func TestDeleteUser_Success(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, "user1").Return(nil)

	err := svc.DeleteUser(ctx, session.Authenticated("user1"), "user1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteUser_Unauthorized(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)

	err := svc.DeleteUser(context.Background(), session.Authenticated("user2"), "user1")

	var unauthorized *apperrors.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteUser_RepoError(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, "user1").Return(apperrors.NewNotFoundError("user", ""))

	err := svc.DeleteUser(ctx, session.Authenticated("user1"), "user1")

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
