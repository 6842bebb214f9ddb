package services

import (
	"errors"

	"notes_service/internal/auth"
	"notes_service/internal/models"
	"notes_service/internal/repositories"

	"gorm.io/gorm"
)

// UserService handles account management: the periphery around the note
// core. It owns the only permanent-deletion path in the system.
type UserService struct {
	users repositories.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repositories.NewUserRepository(db)}
}

// Register creates an account. The partial unique index on live emails
// turns a duplicate into ErrConflict.
func (s *UserService) Register(email, name, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, mapStoreErr("hash password", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, mapStoreErr("create user", err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Bad email and
// bad password are indistinguishable to the caller.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrPermissionDenied
	}
	if err != nil {
		return "", nil, mapStoreErr("find user", err)
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrPermissionDenied
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return "", nil, mapStoreErr("issue token", err)
	}
	return token, user, nil
}

func (s *UserService) GetProfile(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, mapStoreErr("find user", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(id uint, name *string) (*models.User, error) {
	if name != nil {
		err := s.users.UpdateFields(id, map[string]interface{}{"name": *name})
		if err != nil {
			return nil, mapStoreErr("update user", err)
		}
	}
	return s.GetProfile(id)
}

// SoftDelete deactivates the account. Owned notes are kept as-is: the
// ownership chain survives for audit and a later restore.
func (s *UserService) SoftDelete(id uint) error {
	if err := s.users.EnsureExists(id); err != nil {
		return mapStoreErr("find user", err)
	}
	if err := s.users.SoftDelete(id); err != nil {
		return mapStoreErr("delete user", err)
	}
	return nil
}

// RestoreByCredentials reactivates a soft-deleted account. The password
// stands in for a session, since a deleted account cannot log in. If the
// email has been taken by a newer live account the restore conflicts.
func (s *UserService) RestoreByCredentials(email, password string) (*models.User, error) {
	user, err := s.users.FindDeletedByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPermissionDenied
	}
	if err != nil {
		return nil, mapStoreErr("find user", err)
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrPermissionDenied
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		// a live account holds this email now
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapStoreErr("find user", err)
	}

	if err := s.users.Restore(user.ID); err != nil {
		return nil, mapStoreErr("restore user", err)
	}
	return s.users.FindByID(user.ID)
}

// HardDelete permanently removes the account record. This is terminal
// and exists for users only; notes are never hard-deleted.
func (s *UserService) HardDelete(id uint) error {
	if _, err := s.users.FindByIDAny(id); err != nil {
		return mapStoreErr("find user", err)
	}
	if err := s.users.HardDelete(id); err != nil {
		return mapStoreErr("delete user", err)
	}
	return nil
}
