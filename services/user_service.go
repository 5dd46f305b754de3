package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/models"
	"github.com/Tariq-Monowar/timetree/utils"
)

// UserService covers account registration and login. The rest of the system
// only ever sees the user id resolved from a bearer token.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Name == "" {
		return nil, errs.InvalidInput("name is required")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, errs.InvalidInput("a valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, errs.InvalidInput("password must be at least 6 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal("failed to hash password", err)
	}

	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		Bio:       input.Bio,
		CreatedAt: time.Now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token bound to the user id.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, errs.InvalidInput("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errs.Is(err, errs.CodeNotFound) {
		return "", nil, errs.Unauthorized("invalid email or password")
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errs.Unauthorized("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		return "", nil, errs.Internal("failed to generate token", err)
	}
	return token, user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
