package store

import "github.com/mwessels/soccer-league/internal/models"

// Seasons returns every season.
func (s *Store) Seasons() ([]models.Season, error) {
	seasons := []models.Season{}
	if err := s.db.Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

// Season fetches a single season.
func (s *Store) Season(id uint) (*models.Season, error) {
	var season models.Season
	if err := s.db.First(&season, id).Error; err != nil {
		return nil, one(err)
	}
	return &season, nil
}

// MatchdaysBySeason returns all matchdays belonging to one season.
func (s *Store) MatchdaysBySeason(seasonID uint) ([]models.Matchday, error) {
	matchdays := []models.Matchday{}
	if err := s.db.Where("season_id = ?", seasonID).Order("date").Find(&matchdays).Error; err != nil {
		return nil, err
	}
	return matchdays, nil
}

// CreateMatchday inserts a matchday and returns its generated identifier.
func (s *Store) CreateMatchday(seasonID uint, date string) (uint, error) {
	matchday := models.Matchday{SeasonID: seasonID, Date: date}
	if err := s.db.Create(&matchday).Error; err != nil {
		return 0, err
	}
	return matchday.ID, nil
}
