// internal/models/user.go
package models

import "time"

// User is a registered student account. PasswordHash is a bcrypt hash;
// plaintext passwords are never stored.
type User struct {
	StudentID    string    `json:"studentId" dynamodbav:"student_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	Phone        string    `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Program      string    `json:"program,omitempty" dynamodbav:"program,omitempty"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
}
