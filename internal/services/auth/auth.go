// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/travel-itinerary/internal/lib/jwt"
	"github.com/magabrotheeeer/travel-itinerary/internal/lib/password"
	"github.com/magabrotheeeer/travel-itinerary/internal/models"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage"
)

// ErrUserExists возвращается при регистрации с занятыми username или email.
var ErrUserExists = errors.New("user already exists")

// ErrInvalidCredentials возвращается при неудачном входе. Несуществующий
// username и неверный пароль дают одну и ту же ошибку, чтобы не раскрывать,
// какое из полей неверно.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UsernameOrEmailTaken проверяет, заняты ли username или email.
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
}

// AuthService отвечает за регистрацию, авторизацию и выдачу токенов сессии.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и сразу выдаёт токен сессии.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Register"

	taken, err := s.users.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, "", ErrUserExists
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		// Гонка между проверкой и вставкой разрешается уникальным
		// ограничением таблицы.
		if errors.Is(err, storage.ErrUserExists) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и генерирует токен сессии.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// GetUser возвращает пользователя по UID для обработчика /users/me.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}
