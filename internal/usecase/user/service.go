package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"asset-verification-portal/internal/config"
	domainUser "asset-verification-portal/internal/domain/user"
	"asset-verification-portal/internal/logger"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

// Service implements user and authentication use cases
type Service struct {
	userRepo  domainUser.Repository
	tokenRepo domainUser.RefreshTokenRepository
	jwtConfig config.JWTConfig
}

func NewService(
	userRepo domainUser.Repository,
	tokenRepo domainUser.RefreshTokenRepository,
	jwtConfig config.JWTConfig,
) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtConfig: jwtConfig,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewValidationError("Password does not meet requirements", err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, appErrors.NewConflictError("Username is already taken")
	}
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.NewConflictError("Email is already registered")
	}
	if _, err := s.userRepo.GetByEmployeeID(ctx, req.EmployeeID); err == nil {
		return nil, appErrors.NewConflictError("Employee ID is already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeInternal, "Failed to hash password", err)
	}

	u := &domainUser.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHashed: hashed,
		Name:           req.Name,
		Phone:          req.Phone,
		Department:     req.Department,
		EmployeeID:     req.EmployeeID,
		Role:           req.Role,
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, appErrors.NewConflictError("User already exists")
		}
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
		zap.String("role", u.Role),
		zap.String("event", "user_registered"),
	)

	return s.issueTokens(ctx, u)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	logger.Info("User logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
		zap.String("event", "user_login"),
	)

	return s.issueTokens(ctx, u)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// token is revoked so each refresh token works exactly once.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	stored, err := s.tokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if stored.Revoked || stored.IsExpired() {
		return nil, appErrors.ErrInvalidToken
	}

	if _, err := utils.ValidateToken(req.RefreshToken, s.jwtConfig.Secret); err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	if err := s.tokenRepo.Revoke(ctx, req.RefreshToken); err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	return s.issueTokens(ctx, u)
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	logger.Info("User logged out",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_logout"),
	)

	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewNotFoundError("User not found")
		}
		return nil, err
	}

	return ToUserResponse(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewNotFoundError("User not found")
		}
		return nil, err
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Department != nil {
		u.Department = *req.Department
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return ToUserResponse(u), nil
}

func (s *Service) List(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses, nil
}

func (s *Service) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.NewNotFoundError("User not found")
		}
		return err
	}

	logger.Info("User active flag changed",
		zap.String("user_id", userID.String()),
		zap.Bool("active", active),
		zap.String("event", "user_active_changed"),
	)

	return nil
}

func (s *Service) issueTokens(ctx context.Context, u *domainUser.User) (*AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(
		u.ID, u.Email, u.Role,
		s.jwtConfig.Secret, s.jwtConfig.ExpiryHours, s.jwtConfig.RefreshExpiryHours,
	)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeInternal, "Failed to generate tokens", err)
	}

	refresh := &domainUser.RefreshToken{
		UserID:    u.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: time.Now().Add(time.Duration(s.jwtConfig.RefreshExpiryHours) * time.Hour),
	}
	if err := s.tokenRepo.Create(ctx, refresh); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
