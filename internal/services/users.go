package services

import (
	"context"

	"gridsense-backend/internal/models"
)

// UserStore is the slice of the repository the user service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByCWID(ctx context.Context, cwid int) (*models.User, error)
}

type UserService struct {
	users      UserStore
	bcryptCost int
}

func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

func (s *UserService) Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, &ValidationError{Message: "Name is required"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Message: "Password is required"}
	}

	hashed, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		CWID:     req.CWID,
		Name:     req.Name,
		Password: hashed,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKeyError{Message: "There is already a user with that cwid"}
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Find(ctx context.Context, cwid int) (*models.User, error) {
	user, err := s.users.GetByCWID(ctx, cwid)
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Message: "No user with that cwid"}
		}
		return nil, err
	}
	return user, nil
}

// VerifyPassword checks a plaintext password against the stored credential
// for cwid. An unknown cwid is a NotFoundError, distinct from a wrong
// password, which is simply false.
func (s *UserService) VerifyPassword(ctx context.Context, cwid int, plaintext string) (bool, error) {
	user, err := s.Find(ctx, cwid)
	if err != nil {
		return false, err
	}
	return CheckPassword(plaintext, user.Password)
}
