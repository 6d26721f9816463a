package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/password"
	repo "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/validation"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authService struct {
	userRepo repo.UserRepo
	hasher   password.Hasher
	jwtUtil  jwt.JWTUtil
	v        *validator.Validate
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.AuthResult, error)
	Login(context.Context, dto.LoginDTO) (model.AuthResult, error)
	Profile(context.Context, uuid.UUID) (model.User, error)
}

func New(
	ur repo.UserRepo,
	h password.Hasher,
	jm jwt.JWTUtil,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, hasher: h, jwtUtil: jm, v: v, now: time.Now,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if err := validation.Struct(a.v, in); err != nil {
		return model.AuthResult{}, err
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		CreatedAt:    a.now().UTC(),
	}
	if user.ID, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.AuthResult{}, customErrors.ErrAlreadyExists
		}
		return model.AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	return a.issue(user)
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.AuthResult, error) {
	in.Email = normalizeEmail(in.Email)

	if err := validation.Struct(a.v, in); err != nil {
		return model.AuthResult{}, err
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// spend the same hashing work as a real mismatch
		_, _ = a.hasher.Verify(in.Password, a.dummy())
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	}

	return a.issue(user)
}

func (a *authService) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "Profile")
	}
	return user, nil
}

func (a *authService) issue(user model.User) (model.AuthResult, error) {
	token, exp, err := a.jwtUtil.GenerateAccessToken(user.ID)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	return model.AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

func (a *authService) dummy() string {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.Hash(uuid.NewString())
	})
	return a.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
