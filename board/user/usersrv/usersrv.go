package usersrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobpulse/jobpulse/board/user"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/jobpulse/jobpulse/pkg/logx"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// UserService provides account and profile operations
type UserService struct {
	userRepo     user.Repository
	tokenService auth.TokenService
}

// NewUserService creates a new instance of the user service
func NewUserService(userRepo user.Repository, tokenService auth.TokenService) *UserService {
	return &UserService{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Register creates an account and signs the user straight in. Duplicate
// detection rides on the unique email constraint.
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	if req.Email == "" || req.FullName == "" {
		return nil, user.ErrValidationFailed().WithDetail("reason", "email and full_name are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, user.ErrValidationFailed().WithDetail("password", "must be at least 8 characters")
	}
	if !req.Role.IsValid() || req.Role == auth.RoleAdmin {
		return nil, user.ErrInvalidRole().WithDetail("role", string(req.Role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		Phone:        req.Phone,
		CompanyName:  req.CompanyName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := s.tokenService.GenerateAccessToken(newUser.ID, newUser.Email, newUser.Role)
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue token", errx.TypeInternal)
	}

	logx.Infof("New user registered: %s", newUser.Email)

	return &user.AuthResponse{
		User:  newUser,
		Token: token,
	}, nil
}

// Login verifies credentials and issues a fresh token. All failure paths
// return the same error.
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials()
	}

	if !account.IsActive {
		return nil, user.ErrAccountDeactivated()
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, user.ErrInvalidCredentials()
	}

	token, err := s.tokenService.GenerateAccessToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue token", errx.TypeInternal)
	}

	logx.Infof("User logged in: %s", account.Email)

	return &user.AuthResponse{
		User:  account,
		Token: token,
	}, nil
}

// GetProfile retrieves a user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID kernel.UserID) (*user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID kernel.UserID, req user.UpdateProfileRequest) (*user.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, req)
}
