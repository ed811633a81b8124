package identity

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown
// username or a wrong password; callers should not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service owns user accounts and roles. The content stores consume it
// only through user-existence lookups; credential handling stays here.
type Service struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, log: logrus.WithField("component", "identity")}
}

// Register creates a user with a bcrypt-hashed password and the default
// role. Usernames are unique.
func (s *Service) Register(username, nickName, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("username %q already exists", username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if nickName == "" {
		nickName = username
	}
	user := models.User{
		Username: username,
		NickName: nickName,
		Password: string(hashed),
		Role:     models.RoleUser,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": username}).Info("user registered")
	return &user, nil
}

// Authenticate verifies a username/password pair.
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	user, err := s.FindUserByName(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.WithField("username", username).Warn("failed login attempt")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FindUserByName returns nil when no such user exists.
func (s *Service) FindUserByName(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID returns nil when no such user exists.
func (s *Service) FindUserByID(id int) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserExists is the existence check the store validation runs on every
// add/update.
func (s *Service) UserExists(id int) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsBanned reports whether the user carries the banned role.
func (s *Service) IsBanned(user *models.User) bool {
	return user != nil && user.Role == models.RoleBanned
}

// SetRole replaces the user's role. Roles are mutually exclusive, so
// assigning one drops whatever was held before.
func (s *Service) SetRole(userID int, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleUser, models.RoleBanned:
	default:
		return fmt.Errorf("unknown role %q", role)
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "role": role}).Info("role updated")
	return nil
}

// UpdateAvatar stores the relative path of the user's profile image.
func (s *Service) UpdateAvatar(userID int, path string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}
