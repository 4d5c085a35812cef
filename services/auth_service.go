package services

import (
	"context"
	stderrors "errors"
	"strings"

	"gorm.io/gorm"

	"travelcms/constants"
	"travelcms/dto"
	"travelcms/errors"
	"travelcms/models"
	"travelcms/services/logger"
)

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
	logger logger.Logger
}

func NewAuthService(db *gorm.DB, tokens *TokenService, log logger.Logger) *AuthService {
	return &AuthService{db: db, tokens: tokens, logger: log}
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return user, errors.NewAppError(errors.ErrCodeUserNotFound, "User not found", errors.ErrUserNotFound)
		}
		return user, translateDBError(err, "User")
	}
	return user, nil
}

// Login checks the credentials of an active user and issues an access token.
func (s *AuthService) Login(ctx context.Context, in dto.LoginInput) (dto.LoginResponse, error) {
	invalid := errors.NewAppError(errors.ErrCodeUnauthorized, "Incorrect email or password", errors.ErrInvalidPassword)
	user, err := s.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeUserNotFound) {
			return dto.LoginResponse{}, invalid
		}
		return dto.LoginResponse{}, err
	}
	if !user.IsActive || !user.CheckPassword(in.Password) {
		return dto.LoginResponse{}, invalid
	}
	token, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return dto.LoginResponse{}, errors.NewAppError(errors.ErrCodeUnauthorized, "could not issue token", err)
	}
	s.logger.Info("user %d logged in", user.ID)
	return dto.LoginResponse{AccessToken: token, TokenType: constants.TokenType, User: user}, nil
}

// Me loads the user behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return user, errors.NewAppError(errors.ErrCodeUnauthorized, "User no longer exists", errors.ErrUserNotFound)
		}
		return user, translateDBError(err, "User")
	}
	return user, nil
}

// BootstrapAdmin creates the first admin when the users table is empty.
func (s *AuthService) BootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return translateDBError(err, "User")
	}
	if count > 0 {
		return nil
	}
	admin := models.User{
		Email:    email,
		FullName: "Administrator",
		Role:     constants.RoleAdmin,
		Password: password,
	}
	admin.IsActive = true
	slug, err := UniqueSlug(ctx, s.db, &models.User{}, Slugify(admin.SlugSource()), 0)
	if err != nil {
		return translateDBError(err, "User")
	}
	admin.Slug = slug
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return translateDBError(err, "User")
	}
	s.logger.Info("seeded admin user %s", email)
	return nil
}
