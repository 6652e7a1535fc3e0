package user

import "time"

const (
	PermissionStudent = "student"
	PermissionTeacher = "teacher"
	PermissionAdmin   = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Permission   string    `json:"permission"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"date"`

	// EnrolledCourses is filled only by List.
	EnrolledCourses []string `json:"enrolledCourses,omitempty"`
}

type Registration struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Permission string `json:"permission" validate:"required,oneof=student teacher admin"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordChange struct {
	PrevPassword    string `json:"prevPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}
