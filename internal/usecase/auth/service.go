package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/hash"
	"github.com/frontandrew/rental/internal/pkg/jwt"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ на вход
type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    string       `json:"expires_at"`
}

// Service содержит бизнес-логику аутентификации
type Service struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	tokenService     *jwt.TokenService
	refreshExpiry    time.Duration
	logger           logger.Logger
}

// NewService создает новый экземпляр AuthService
func NewService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	tokenService *jwt.TokenService,
	refreshExpiry time.Duration,
	logger logger.Logger,
) *Service {
	return &Service{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokenService:     tokenService,
		refreshExpiry:    refreshExpiry,
		logger:           logger,
	}
}

// Register регистрирует нового клиента.
// Роль через публичную регистрацию не выбирается: всегда customer,
// администраторов заводят только существующие администраторы.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	s.logger.Info("Registering new user", map[string]interface{}{
		"email": req.Email,
	})

	// Проверяем, что пользователь с таким email еще не существует
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		s.logger.Warn("User already exists", map[string]interface{}{
			"email": req.Email,
		})
		return nil, domain.ErrUserAlreadyExists
	}

	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidPassword
	}

	// Хешируем пароль
	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}

	// Валидируем данные пользователя
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// Сохраняем в БД
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return user, nil
}

// Login аутентифицирует пользователя и возвращает JWT токены
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	s.logger.Info("User login attempt", map[string]interface{}{
		"email": req.Email,
	})

	// Находим пользователя по email
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": req.Email,
			})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Проверяем, активен ли пользователь
	if !user.IsActive {
		s.logger.Warn("Login failed: user inactive", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, domain.ErrUserInactive
	}

	// Проверяем пароль
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, domain.ErrInvalidCredentials
	}

	// Генерируем JWT токены
	tokenPair, err := s.tokenService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("Failed to generate tokens", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Сохраняем хеш refresh токена для последующей ротации
	if err := s.storeRefreshToken(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		s.logger.Error("Failed to store refresh token", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	// Обновляем last_login_at
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Error("Failed to update last login", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})

	return &LoginResponse{
		User:         user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// RefreshToken меняет валидный refresh токен на новую пару токенов.
// Старый токен отзывается, повторное использование невозможно.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.tokenService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	tokenHash := jwt.HashToken(refreshToken)
	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	if !stored.IsValid() {
		s.logger.Warn("Refresh token revoked or expired", map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// Ротация: отзываем старый токен и выдаем новую пару
	if err := s.refreshTokenRepo.Revoke(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:         user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// Logout отзывает все refresh токены пользователя
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.refreshTokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	s.logger.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})

	return nil
}

// GetUserByID возвращает пользователя по ID
func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ValidateToken валидирует JWT токен и возвращает claims
func (s *Service) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.tokenService.ValidateToken(tokenString)
}

func (s *Service) storeRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	token := &domain.RefreshToken{
		UserID:    userID,
		TokenHash: jwt.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.refreshExpiry),
		CreatedAt: time.Now(),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
