// internal/auth/auth.go

// Package auth handles student registration and login. Passwords are
// stored only as bcrypt hashes; login failures are reported with one
// generic message regardless of which credential was wrong.
package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
	"edubot/internal/models"
)

// AccountStore is the persistence surface the service needs.
type AccountStore interface {
	GetUser(ctx context.Context, studentID string) (*models.User, error)
	PutUser(ctx context.Context, user *models.User) error
	GetApplication(ctx context.Context, userID string) (*models.Application, error)
	PutApplication(ctx context.Context, app *models.Application) error
}

type Service struct {
	store  AccountStore
	logger logger.Logger
}

func NewService(store AccountStore, log logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// Register creates an account plus an empty application record. The
// student id is the account key; re-registering one is rejected.
func (s *Service) Register(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error) {
	studentID := strings.TrimSpace(req.StudentID)
	name := strings.TrimSpace(req.Name)

	if studentID == "" || name == "" || req.Password == "" {
		return nil, stderrors.NewValidationFailedError("studentId, name and password are required")
	}

	existing, err := s.store.GetUser(ctx, studentID)
	if err != nil && stderrors.Normalize(err).Code != stderrors.ErrCodeUserNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, stderrors.NewDuplicateUserError(studentID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, stderrors.NewInternalError(err)
	}

	user := &models.User{
		StudentID:    studentID,
		Name:         name,
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Program:      strings.TrimSpace(req.Program),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, err
	}

	app := models.NewApplication(studentID, name, user.Program)
	if err := s.store.PutApplication(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Student registered", map[string]interface{}{
		"studentId": studentID,
		"program":   user.Program,
	})

	return &models.AuthResponse{
		Success:  true,
		Message:  "Registration successful! You can now start uploading your documents.",
		Name:     name,
		Program:  user.Program,
		Progress: app.Progress,
	}, nil
}

// Login verifies a student id and password pair.
func (s *Service) Login(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error) {
	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" || req.Password == "" {
		return nil, stderrors.NewValidationFailedError("studentId and password are required")
	}

	user, err := s.store.GetUser(ctx, studentID)
	if err != nil {
		if stderrors.Normalize(err).Code == stderrors.ErrCodeUserNotFound {
			// Same answer as a wrong password.
			return nil, stderrors.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, stderrors.NewInvalidCredentialsError()
	}

	resp := &models.AuthResponse{
		Success: true,
		Message: "Welcome back, " + user.Name + "!",
		Name:    user.Name,
		Program: user.Program,
	}
	if app, err := s.store.GetApplication(ctx, studentID); err == nil && app != nil {
		resp.Progress = app.Progress
	}

	return resp, nil
}
