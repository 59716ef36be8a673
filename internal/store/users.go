package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mwessels/soccer-league/internal/auth"
	"github.com/mwessels/soccer-league/internal/models"
)

// CreateUser registers a new account: hashes the password, generates a fresh
// API key, and inserts the row. Returns ErrEmailTaken when the email is
// already registered — checked up front and backed by the unique index, so a
// race between check and insert still cannot produce a duplicate.
func (s *Store) CreateUser(name, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ApiKey:       auth.NewAPIKey(),
		Status:       1,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies an email/password pair and returns the user on
// success. Unknown email and wrong password both return ErrNotFound so the
// two failure modes are indistinguishable to a caller probing for accounts.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrNotFound
	}
	return &user, nil
}

// UserByID fetches a single user.
func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, one(err)
	}
	return &user, nil
}

// UserByAPIKey resolves a long-lived API key to its user. An unknown key is
// ErrNotFound.
func (s *Store) UserByAPIKey(apiKey string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("api_key = ?", apiKey).First(&user).Error; err != nil {
		return nil, one(err)
	}
	return &user, nil
}

// RolesForUser returns the names of the roles assigned to a user.
func (s *Store) RolesForUser(userID uint) ([]string, error) {
	var roles []string
	err := s.db.Table("user_roles ur").
		Select("r.name").
		Joins("JOIN roles r ON ur.role_id = r.id").
		Where("ur.user_id = ?", userID).
		Scan(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// CompetitionGrantsForUser returns the competitions the user has been
// granted access to; these end up in the session token.
func (s *Store) CompetitionGrantsForUser(userID uint) ([]auth.CompetitionGrant, error) {
	grants := []auth.CompetitionGrant{}
	err := s.db.Table("user_competitions uc").
		Select("uc.competition_id, c.name").
		Joins("JOIN competitions c ON uc.competition_id = c.id").
		Where("uc.user_id = ?", userID).
		Scan(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// TeamGrantsForUser returns the teams the user has been granted access to.
func (s *Store) TeamGrantsForUser(userID uint) ([]auth.TeamGrant, error) {
	grants := []auth.TeamGrant{}
	err := s.db.Table("user_teams ut").
		Select("ut.team_id, t.name AS team_name").
		Joins("JOIN teams t ON ut.team_id = t.id").
		Where("ut.user_id = ?", userID).
		Scan(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}
