package user

import "context"

type Store interface {
	// Create returns apperr.ErrConflict when the e-mail is taken.
	Create(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	// List returns users with their enrolled course ids; an empty permission lists everyone.
	List(ctx context.Context, permission string) ([]User, error)
	SetPassword(ctx context.Context, id, hash string) error
	// Delete removes the user together with their enrollments.
	Delete(ctx context.Context, id string) error
}
