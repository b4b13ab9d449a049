package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
	"entreprenapp/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const verifyCodeTTL = 15 * time.Minute

type AuthUsecase interface {
	Register(ctx context.Context, req entity.RegisterRequest) (entity.User, error)
	Login(ctx context.Context, req entity.LoginRequest) (entity.AuthResponse, error)
	Verify(ctx context.Context, req entity.VerifyRequest) error
	ResendCode(ctx context.Context, email string) error
	// Refresh mints a new access token from a valid refresh token.
	Refresh(ctx context.Context, refreshToken string) (entity.AuthResponse, error)
	ValidateAccessToken(token string) (*entity.TokenClaims, error)
	ValidateRefreshToken(token string) (*entity.TokenClaims, error)
	// ResolvePrincipal turns verified claims into the acting user,
	// rejecting deleted (401) and unverified (403) accounts.
	ResolvePrincipal(ctx context.Context, claims *entity.TokenClaims) (entity.User, error)
}

type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *jwt.TokenManager
	log      *zap.SugaredLogger
}

func NewAuthUsecase(userRepo repository.UserRepository, tokens *jwt.TokenManager, log *zap.SugaredLogger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func (u *authUsecase) Register(ctx context.Context, req entity.RegisterRequest) (entity.User, error) {
	role := entity.Role(req.Role)
	if !role.Valid() || role == entity.RoleAdmin {
		return entity.User{}, apperror.BadRequest("invalid role")
	}

	emailExists, err := u.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return entity.User{}, apperror.Internal(err)
	}
	if emailExists {
		return entity.User{}, apperror.BadRequest("email already taken")
	}

	usernameExists, err := u.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return entity.User{}, apperror.Internal(err)
	}
	if usernameExists {
		return entity.User{}, apperror.BadRequest("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, apperror.Internal(err)
	}

	code, err := generateVerifyCode()
	if err != nil {
		return entity.User{}, apperror.Internal(err)
	}
	expiresAt := time.Now().Add(verifyCodeTTL)

	user := entity.User{
		Username:            req.Username,
		Email:               req.Email,
		Password:            string(hashedPassword),
		Name:                req.Name,
		Role:                role,
		Verified:            false,
		VerifyCode:          code,
		VerifyCodeExpiresAt: &expiresAt,
	}

	userId, err := u.userRepo.Create(ctx, user)
	if err != nil {
		return entity.User{}, apperror.Internal(err)
	}
	user.Id = userId

	// Mail delivery is handled by an external provider; without one the
	// code is only visible in the server log.
	u.log.Infow("verification code issued", "email", user.Email, "code", code)

	user.Password = ""
	return user, nil
}

func (u *authUsecase) Verify(ctx context.Context, req entity.VerifyRequest) error {
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("account not found")
		}
		return apperror.Internal(err)
	}
	if user.Verified {
		return apperror.BadRequest("account already verified")
	}
	if user.VerifyCode == "" || user.VerifyCode != req.Code {
		return apperror.BadRequest("invalid verification code")
	}
	if user.VerifyCodeExpiresAt == nil || time.Now().After(*user.VerifyCodeExpiresAt) {
		return apperror.BadRequest("verification code has expired")
	}

	if err := u.userRepo.SetVerified(ctx, user.Id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) ResendCode(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("account not found")
		}
		return apperror.Internal(err)
	}
	if user.Verified {
		return apperror.BadRequest("account already verified")
	}

	code, err := generateVerifyCode()
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.SetVerifyCode(ctx, user.Id, code, time.Now().Add(verifyCodeTTL)); err != nil {
		return apperror.Internal(err)
	}

	u.log.Infow("verification code reissued", "email", user.Email, "code", code)
	return nil
}

func (u *authUsecase) Login(ctx context.Context, req entity.LoginRequest) (entity.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.AuthResponse{}, apperror.Unauthorized("invalid email or password")
		}
		return entity.AuthResponse{}, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return entity.AuthResponse{}, apperror.Unauthorized("invalid email or password")
	}

	if !user.Verified {
		return entity.AuthResponse{}, apperror.Forbidden("account not verified")
	}

	return u.issueTokens(user)
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (entity.AuthResponse, error) {
	claims, err := u.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return entity.AuthResponse{}, apperror.Unauthorized("invalid or expired refresh token")
	}

	user, err := u.ResolvePrincipal(ctx, claims)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	return u.issueTokens(user)
}

func (u *authUsecase) issueTokens(user entity.User) (entity.AuthResponse, error) {
	accessToken, err := u.tokens.GenerateAccessToken(user)
	if err != nil {
		return entity.AuthResponse{}, apperror.Internal(err)
	}
	refreshToken, err := u.tokens.GenerateRefreshToken(user)
	if err != nil {
		return entity.AuthResponse{}, apperror.Internal(err)
	}

	user.Password = ""
	return entity.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) ValidateAccessToken(token string) (*entity.TokenClaims, error) {
	return u.tokens.ValidateAccessToken(token)
}

func (u *authUsecase) ValidateRefreshToken(token string) (*entity.TokenClaims, error) {
	return u.tokens.ValidateRefreshToken(token)
}

func (u *authUsecase) ResolvePrincipal(ctx context.Context, claims *entity.TokenClaims) (entity.User, error) {
	user, err := u.userRepo.Get(ctx, claims.UserId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Covers both hard-missing and soft-deleted accounts.
			return entity.User{}, apperror.Unauthorized("account no longer exists")
		}
		return entity.User{}, apperror.Internal(err)
	}
	if !user.Verified {
		return entity.User{}, apperror.Forbidden("account not verified")
	}
	return user, nil
}

func generateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
