package store

import "github.com/mwessels/soccer-league/internal/models"

// FormationPositionRow is one spot of a formation with its position type
// resolved.
type FormationPositionRow struct {
	PositionID       uint   `json:"PositionID"`
	Name             string `json:"Name"`
	Code             string `json:"Code"`
	GridPosition     string `json:"GridPosition"`
	PositionTypeID   uint   `json:"PositionTypeID"`
	PositionTypeName string `json:"PositionTypeName"`
}

// Events returns the event taxonomy.
func (s *Store) Events() ([]models.Event, error) {
	events := []models.Event{}
	if err := s.db.Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Formations returns all known formations.
func (s *Store) Formations() ([]models.Formation, error) {
	formations := []models.Formation{}
	if err := s.db.Order("id").Find(&formations).Error; err != nil {
		return nil, err
	}
	return formations, nil
}

// FormationPositions returns the spots of one formation plus the
// formation-less spots that apply everywhere (bench and generic positions).
func (s *Store) FormationPositions(formationID uint) ([]FormationPositionRow, error) {
	positions := []FormationPositionRow{}
	err := s.db.Table("formation_positions fp").
		Select(`fp.position_id, fp.name, fp.code, fp.grid_position,
			pos.position_type_id, post.name AS position_type_name`).
		Joins("JOIN positions pos ON fp.position_id = pos.id").
		Joins("JOIN position_types post ON pos.position_type_id = post.id").
		Where("fp.formation_id = ? OR fp.formation_id IS NULL", formationID).
		Order("fp.position_id").
		Scan(&positions).Error
	if err != nil {
		return nil, err
	}
	return positions, nil
}
