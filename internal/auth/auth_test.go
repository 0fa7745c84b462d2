// internal/auth/auth_test.go
package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
	"edubot/internal/models"
)

// ==========================================
// TEST FAKES
// ==========================================

type fakeAccountStore struct {
	users map[string]*models.User
	apps  map[string]*models.Application
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		users: map[string]*models.User{},
		apps:  map[string]*models.Application{},
	}
}

func (f *fakeAccountStore) GetUser(ctx context.Context, studentID string) (*models.User, error) {
	if user, ok := f.users[studentID]; ok {
		return user, nil
	}
	return nil, stderrors.NewUserNotFoundError(studentID)
}

func (f *fakeAccountStore) PutUser(ctx context.Context, user *models.User) error {
	f.users[user.StudentID] = user
	return nil
}

func (f *fakeAccountStore) GetApplication(ctx context.Context, userID string) (*models.Application, error) {
	return f.apps[userID], nil
}

func (f *fakeAccountStore) PutApplication(ctx context.Context, app *models.Application) error {
	f.apps[app.UserID] = app
	return nil
}

func registerRequest() models.AuthRequest {
	return models.AuthRequest{
		StudentID: "STU2026001",
		Name:      "Thandi Nkosi",
		Email:     "thandi@example.com",
		Program:   "Engineering",
		Password:  "s3cret-pass",
	}
}

// ==========================================
// REGISTER TESTS
// ==========================================

func TestRegister(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewService(store, logger.NewNoOpLogger())

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Thandi Nkosi", resp.Name)
	assert.Equal(t, 0, resp.Progress)

	user := store.users["STU2026001"]
	require.NotNil(t, user)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash, "password must never be stored in clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	app := store.apps["STU2026001"]
	require.NotNil(t, app)
	assert.Equal(t, models.StatusNewApplication, app.Status)
	assert.Len(t, app.Documents, 4)
}

func TestRegister_DuplicateStudentID(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewService(store, logger.NewNoOpLogger())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeDuplicateUser, stderrors.Normalize(err).Code)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewService(newFakeAccountStore(), logger.NewNoOpLogger())

	tests := []struct {
		name string
		req  models.AuthRequest
	}{
		{"no student id", models.AuthRequest{Name: "X", Password: "p"}},
		{"no name", models.AuthRequest{StudentID: "S1", Password: "p"}},
		{"no password", models.AuthRequest{StudentID: "S1", Name: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, stderrors.ErrCodeValidationFailed, stderrors.Normalize(err).Code)
		})
	}
}

// ==========================================
// LOGIN TESTS
// ==========================================

func TestLogin(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewService(store, logger.NewNoOpLogger())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// Some progress to echo back.
	store.apps["STU2026001"].Progress = 25

	resp, err := svc.Login(context.Background(), models.AuthRequest{
		StudentID: "STU2026001",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Thandi Nkosi", resp.Name)
	assert.Equal(t, "Engineering", resp.Program)
	assert.Equal(t, 25, resp.Progress)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewService(store, logger.NewNoOpLogger())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.AuthRequest{
		StudentID: "STU2026001",
		Password:  "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeInvalidCredentials, stderrors.Normalize(err).Code)
}

func TestLogin_UnknownStudentLooksLikeWrongPassword(t *testing.T) {
	svc := NewService(newFakeAccountStore(), logger.NewNoOpLogger())

	_, err := svc.Login(context.Background(), models.AuthRequest{
		StudentID: "GHOST",
		Password:  "whatever",
	})
	require.Error(t, err)

	stdErr := stderrors.Normalize(err)
	assert.Equal(t, stderrors.ErrCodeInvalidCredentials, stdErr.Code)
	assert.NotContains(t, stdErr.Message, "GHOST")
}
