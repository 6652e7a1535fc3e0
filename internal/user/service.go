// Package user manages accounts: registration, login checks and passwords.
package user

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/logging"
	"github.com/mind-engage/lessonhub/internal/validation"
)

type Option func(*Service)

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithHashCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(c int) Option { return func(s *Service) { s.cost = c } }

type Service struct {
	store    Store
	validate *validation.Validator
	log      *slog.Logger
	cost     int
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, validate: validation.New(), log: logging.Discard(), cost: 12}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, r Registration) (User, error) {
	r.Email = strings.TrimSpace(r.Email)
	if err := s.validate.Struct(r); err != nil {
		return User{}, err
	}
	if _, err := s.store.FindByEmail(ctx, r.Email); err == nil {
		return User{}, errors.Wrap(apperr.ErrConflict, "user already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}
	u, err := s.store.Create(ctx, User{
		Email:        r.Email,
		PasswordHash: string(hash),
		Permission:   r.Permission,
		Avatar:       Gravatar(r.Email),
	})
	if err != nil {
		return User{}, err
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID, "permission", u.Permission)
	return u, nil
}

// Authenticate returns apperr.ErrUnauthorized for an unknown e-mail or a wrong password.
func (s *Service) Authenticate(ctx context.Context, c Credentials) (User, error) {
	if err := s.validate.Struct(c); err != nil {
		return User{}, err
	}
	u, err := s.store.FindByEmail(ctx, strings.TrimSpace(c.Email))
	if errors.Is(err, apperr.ErrNotFound) {
		return User{}, errors.Wrap(apperr.ErrUnauthorized, "invalid credentials")
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(c.Password)) != nil {
		return User{}, errors.Wrap(apperr.ErrUnauthorized, "invalid credentials")
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID string, p PasswordChange) error {
	if err := s.validate.Struct(p); err != nil {
		return err
	}
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(p.PrevPassword)) != nil {
		return apperr.Invalid("prevPassword", "current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.NewPassword), s.cost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	return s.store.SetPassword(ctx, userID, string(hash))
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, permission string) ([]User, error) {
	return s.store.List(ctx, permission)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user removed", "user_id", id)
	return nil
}

// Gravatar returns the avatar URL for email (200px, pg rating, mystery-man fallback).
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{"s": {"200"}, "r": {"pg"}, "d": {"mm"}}
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
