// internal/store/seed.go
package store

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	stderrors "edubot/internal/common/errors"
	"edubot/internal/models"
)

// demoPassword is the shared login password for the seeded demo accounts.
const demoPassword = "password123"

type demoAccount struct {
	user models.User
	app  models.Application
}

func demoAccounts() []demoAccount {
	return []demoAccount{
		{
			user: models.User{
				StudentID: "DEMO001",
				Name:      "John Student",
				Email:     "john.student@example.com",
				Phone:     "+27821110001",
				Program:   "Computer Science",
			},
			app: models.Application{
				UserID:      "DEMO001",
				Name:        "John Student",
				Program:     "Computer Science",
				Progress:    75,
				Status:      models.StatusUnderReview,
				SubmittedAt: "2025-10-15",
				NextSteps:   "Please upload your 3-month bank statements to complete your application.",
				Documents: []models.DocumentSlot{
					{Name: "ID Document", Status: models.DocVerified},
					{Name: "Matric Certificate", Status: models.DocVerified},
					{Name: "Income Proof", Status: models.DocPending},
					{Name: "Bank Statements", Status: models.DocMissing},
				},
			},
		},
		{
			user: models.User{
				StudentID: "DEMO002",
				Name:      "Sarah Wilson",
				Email:     "sarah.wilson@example.com",
				Phone:     "+27821110002",
				Program:   "Business Administration",
			},
			app: models.Application{
				UserID:      "DEMO002",
				Name:        "Sarah Wilson",
				Program:     "Business Administration",
				Progress:    100,
				Status:      models.StatusApproved,
				SubmittedAt: "2025-10-12",
				NextSteps:   "Congratulations! Your application has been approved. Check your email for enrollment details.",
				Documents: []models.DocumentSlot{
					{Name: "ID Document", Status: models.DocVerified},
					{Name: "Matric Certificate", Status: models.DocVerified},
					{Name: "Income Proof", Status: models.DocVerified},
					{Name: "Bank Statements", Status: models.DocVerified},
				},
			},
		},
		{
			user: models.User{
				StudentID: "STU2025001",
				Name:      "Mike Johnson",
				Email:     "mike.johnson@example.com",
				Phone:     "+27821110003",
				Program:   "Engineering",
			},
			app: models.Application{
				UserID:      "STU2025001",
				Name:        "Mike Johnson",
				Program:     "Engineering",
				Progress:    25,
				Status:      models.StatusDocumentsRequired,
				SubmittedAt: "2025-10-20",
				NextSteps:   "Please upload your Matric Certificate, Income Proof, and Bank Statements.",
				Documents: []models.DocumentSlot{
					{Name: "ID Document", Status: models.DocVerified},
					{Name: "Matric Certificate", Status: models.DocMissing},
					{Name: "Income Proof", Status: models.DocMissing},
					{Name: "Bank Statements", Status: models.DocMissing},
				},
			},
		},
	}
}

// Seed loads the demo accounts used in walkthroughs. Existing records are
// left alone so a restart never resets someone's in-flight demo session.
func (s *Store) Seed(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return stderrors.NewInternalError(err)
	}

	for _, account := range demoAccounts() {
		existing, err := s.GetApplication(ctx, account.app.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		user := account.user
		user.PasswordHash = string(hash)
		user.CreatedAt = time.Now().UTC()
		if err := s.PutUser(ctx, &user); err != nil {
			return err
		}

		app := account.app
		app.LastUpdated = time.Now().UTC().Format(time.RFC3339)
		if err := s.PutApplication(ctx, &app); err != nil {
			return err
		}

		s.logger.Info("Seeded demo account", map[string]interface{}{
			"studentId": user.StudentID,
			"program":   user.Program,
		})
	}

	return nil
}
