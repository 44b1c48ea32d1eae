package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
	"github.com/leodalati/Employee-Record-Management-System/internal/repo"
)

// UserService handles user auth logic.
type UserService struct {
	repo repo.UserRepo
	cost int
	// dummyHash is compared against when the username is unknown, so a miss
	// costs the same bcrypt work as a wrong password.
	dummyHash []byte
	sf        singleflight.Group
}

// NewUserService returns a new UserService. cost <= 0 means bcrypt.DefaultCost.
func NewUserService(r repo.UserRepo, cost int) (*UserService, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &UserService{repo: r, cost: cost, dummyHash: dummy}, nil
}

// Authenticate checks username and password; returns user if valid.
// Unknown usernames and wrong passwords fail with the same error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, dom.ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dom.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return dom.User{}, dom.ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, dom.ErrInvalidCredentials
	}
	return u, nil
}

// GetByID reloads an account. Concurrent calls for the same id share one
// query; the result is not kept once they return. The shared query does not
// inherit the caller's cancellation, so one caller going away does not fail
// the others waiting on it.
func (s *UserService) GetByID(ctx context.Context, id string) (dom.User, error) {
	ch := s.sf.DoChan(id, func() (any, error) {
		return s.repo.GetByID(context.WithoutCancel(ctx), id)
	})
	select {
	case <-ctx.Done():
		return dom.User{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return dom.User{}, res.Err
		}
		return res.Val.(dom.User), nil
	}
}

// Register creates a new user with hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, dom.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return dom.User{}, err
	}
	return s.repo.Create(ctx, username, string(hash))
}
