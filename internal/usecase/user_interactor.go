package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/GoArmGo/RecipeApp/internal/core/ports"
	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// userInteractor реализует UserUseCase поверх хранилищ пользователей и токенов.
type userInteractor struct {
	users  ports.UserStorage
	tokens ports.TokenStorage
	logger *slog.Logger
}

func NewUserUseCase(users ports.UserStorage, tokens ports.TokenStorage, logger *slog.Logger) UserUseCase {
	return &userInteractor{users: users, tokens: tokens, logger: logger}
}

// normalizeEmail приводит email к каноничному виду для хранения и поиска.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(ve *domain.ValidationError, email string) {
	if email == "" {
		ve.Add("email", "this field is required")
		return
	}
	if !emailPattern.MatchString(email) {
		ve.Add("email", "enter a valid email address")
	}
}

func validatePassword(ve *domain.ValidationError, password string) {
	if password == "" {
		ve.Add("password", "this field is required")
		return
	}
	if len(password) < minPasswordLength {
		ve.Add("password", fmt.Sprintf("ensure this field has at least %d characters", minPasswordLength))
	}
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(b), nil
}

func comparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// genTokenKey генерирует непрозрачный ключ токена (40 hex-символов).
func genTokenKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("ошибка генерации ключа токена: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Register создает нового пользователя с необратимо захешированным паролем.
func (u *userInteractor) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = normalizeEmail(email)

	ve := domain.NewValidationError()
	validateEmail(ve, email)
	validatePassword(ve, password)
	if !ve.Empty() {
		return nil, ve
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
	}
	if err := u.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// authenticate проверяет учетные данные. Ответ нарочно одинаковой формы:
// несуществующий email и неверный пароль неразличимы для вызывающего.
func (u *userInteractor) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	authErr := &domain.AuthenticationError{Message: "unable to authenticate with provided credentials"}

	user, err := u.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, authErr
		}
		return nil, err
	}
	if !user.IsActive || !comparePassword(user.PasswordHash, password) {
		return nil, authErr
	}
	return user, nil
}

// IssueToken проверяет учетные данные и заменяет токен пользователя свежим.
func (u *userInteractor) IssueToken(ctx context.Context, email, password string) (string, error) {
	ve := domain.NewValidationError()
	validateEmail(ve, normalizeEmail(email))
	if password == "" {
		ve.Add("password", "this field is required")
	}
	if !ve.Empty() {
		return "", ve
	}

	user, err := u.authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	key, err := genTokenKey()
	if err != nil {
		return "", err
	}
	if err := u.tokens.ReplaceToken(ctx, &domain.Token{Key: key, UserID: user.ID}); err != nil {
		return "", err
	}

	u.logger.Info("token issued", "user_id", user.ID)
	return key, nil
}

// ResolveToken возвращает активного пользователя по ключу токена.
func (u *userInteractor) ResolveToken(ctx context.Context, key string) (*domain.User, error) {
	if key == "" {
		return nil, domain.ErrUnauthenticated
	}

	token, err := u.tokens.GetToken(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	user, err := u.users.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Profile возвращает профиль пользователя.
func (u *userInteractor) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return u.users.GetUserByID(ctx, userID)
}

// UpdateProfile применяет частичное обновление: nil-поля не трогаются,
// пароль при изменении перехешируется.
func (u *userInteractor) UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	user, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ve := domain.NewValidationError()
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		validateEmail(ve, email)
		user.Email = email
	}
	if update.Password != nil {
		validatePassword(ve, *update.Password)
	}
	if !ve.Empty() {
		return nil, ve
	}

	if update.Password != nil {
		hash, err := hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if update.Name != nil {
		user.Name = *update.Name
	}

	if err := u.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}
