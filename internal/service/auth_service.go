package service

import (
	"context"
	"time"

	"auction-desk-be/internal/config"
	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/pkg/logger"
	"auction-desk-be/internal/repository/memory"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
	attempts   *memory.LoginAttemptStore
	logger     logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	cfg *config.Config,
	attempts *memory.LoginAttemptStore,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		cfg:        cfg,
		attempts:   attempts,
		logger:     log,
	}
}

// Login verifies credentials and issues a signed bearer token. Repeated
// failures for the same username are throttled for the lockout window.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.attempts.Failures(req.Username) >= s.cfg.Auth.MaxLoginAttempts {
		return nil, apperror.New(apperror.CodeUnauthorized, "Too many failed attempts, try again later")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.attempts.RecordFailure(req.Username)
		return nil, apperror.New(apperror.CodeUnauthorized, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		count := s.attempts.RecordFailure(req.Username)
		s.logger.Warn("Auth", "Failed login attempt", map[string]interface{}{
			"username": req.Username,
			"failures": count,
		})
		return nil, apperror.New(apperror.CodeUnauthorized, "Invalid username or password")
	}

	s.attempts.Reset(req.Username)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "Failed to sign token")
	}

	return &dto.LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) issueToken(user *entity.User) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	claims := jwt.MapClaims{
		"sub":   user.Username,
		"admin": user.IsAdmin,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JwtSecret))
}

func (s *authService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Newf(apperror.CodeValidation, "User %s already exists", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Every account created through the console is an operator account
	// with full access; there is no lesser role.
	user := &entity.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Auth", "User created", map[string]interface{}{"username": user.Username})
	return &dto.UserResponse{
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFoundf("User %s not found", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return uow.UserRepository().Update(ctx, user)
}

// DeleteUser removes an account. The bootstrap admin account cannot be
// deleted, otherwise a fresh deployment could lock itself out.
func (s *authService) DeleteUser(ctx context.Context, username string) error {
	if username == s.cfg.Auth.AdminUsername {
		return apperror.InvalidOperation("Cannot delete the admin account")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFoundf("User %s not found", username)
	}

	return uow.UserRepository().Delete(ctx, user.Id)
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "username"})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.UserResponse{
			Username:  user.Username,
			IsAdmin:   user.IsAdmin,
			CreatedAt: user.CreatedAt,
		})
	}
	return responses, nil
}
