package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"recipedia/domain"
	"recipedia/entities"
	"recipedia/internal/utils"
	"recipedia/internal/utils/mailing"
	"recipedia/pkg/jwt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserProfile, error)
		UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.UserProfile, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error) {
	if existing, err := s.userRepository.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.Create(ctx, &user); err != nil {
		return nil, err
	}

	go func() {
		body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to Recipedia! Start sharing your recipes today.</p>", user.Name)
		if err := mailing.SendMail(user.Email, "Welcome to Recipedia", body); err != nil {
			log.Printf("failed to send welcome email to %s: %v", user.Email, err)
		}
	}()

	profile := mapProfile(&user)
	return &profile, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.LoginResponse{
		Token: token,
		User:  mapProfile(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserProfile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := mapProfile(user)
	return &profile, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.UserProfile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}

	if err := s.userRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	profile := mapProfile(user)
	return &profile, nil
}

// ForgotPassword always reports success to the caller; whether the email
// exists is not leaked.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(
		map[string]any{"user_id": user.ID.String()},
		15*time.Minute,
	)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=\"%s\">here</a> to reset your password. The link expires in 15 minutes.</p>",
		user.Name, resetURL,
	)
	return mailing.SendMail(user.Email, "Reset your Recipedia password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.ErrParseUUID
	}

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	return s.userRepository.Update(ctx, user)
}

func mapProfile(user *entities.User) domain.UserProfile {
	profile := domain.UserProfile{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.PhotoURL != "" {
		profile.PhotoURL = &user.PhotoURL
	}
	return profile
}
