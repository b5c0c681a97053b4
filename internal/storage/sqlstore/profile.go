package sqlstore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/storage"
)

func (s *Store) GetProfile() (models.RecoveryProfile, error) {
	var (
		p         models.RecoveryProfile
		setAside  decimal.NullDecimal
		updatedAt string
	)
	err := s.queryRow(`
		SELECT first_name, last_name, phone, date_of_birth, address_city, profile_image_url,
		       substance, sobriety_start_date, daily_cost, money_set_aside, active_goal_id, updated_at
		FROM profile WHERE id = 1`).Scan(
		&p.FirstName, &p.LastName, &p.Phone, &p.DateOfBirth, &p.AddressCity, &p.ProfileImageURL,
		&p.Substance, &p.SobrietyStartDate, &p.DailyCost, &setAside, &p.ActiveSavingsGoalID, &updatedAt,
	)
	if isNoRows(err) {
		return models.RecoveryProfile{}, fmt.Errorf("profile: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.RecoveryProfile{}, err
	}
	if setAside.Valid {
		p.ActualMoneySetAside = &setAside.Decimal
	}
	p.UpdatedAt = parseTime(updatedAt)

	if p.CustomSavingsGoals, err = s.GetSavingsGoals(); err != nil {
		return models.RecoveryProfile{}, err
	}
	if p.EmergencyContacts, err = s.GetEmergencyContacts(); err != nil {
		return models.RecoveryProfile{}, err
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.RecoveryProfile) error {
	setAside := decimal.NullDecimal{}
	if p.ActualMoneySetAside != nil {
		setAside = decimal.NewNullDecimal(*p.ActualMoneySetAside)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}

	_, err := s.exec(`
		UPDATE profile SET
			first_name = ?, last_name = ?, phone = ?, date_of_birth = ?, address_city = ?,
			profile_image_url = ?, substance = ?, sobriety_start_date = ?, daily_cost = ?,
			money_set_aside = ?, active_goal_id = ?, updated_at = ?
		WHERE id = 1`,
		p.FirstName, p.LastName, p.Phone, p.DateOfBirth, p.AddressCity,
		p.ProfileImageURL, p.Substance, p.SobrietyStartDate, p.DailyCost,
		setAside, p.ActiveSavingsGoalID, formatTime(p.UpdatedAt),
	)
	return err
}

func (s *Store) AddSavingsGoal(g models.SavingsGoal) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	_, err := s.exec(
		"INSERT INTO savings_goals (id, name, target_amount, icon, created_at) VALUES (?, ?, ?, ?, ?)",
		g.ID, g.Name, g.TargetAmount, g.Icon, formatTime(g.CreatedAt),
	)
	return err
}

func (s *Store) GetSavingsGoals() ([]models.SavingsGoal, error) {
	rows, err := s.query("SELECT id, name, target_amount, icon, created_at FROM savings_goals ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		var (
			g         models.SavingsGoal
			createdAt string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.Icon, &createdAt); err != nil {
			return nil, err
		}
		g.CreatedAt = parseTime(createdAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) DeleteSavingsGoal(id string) error {
	if err := s.deleteByKey("savings_goals", "id", id); err != nil {
		return err
	}
	// Clear a dangling active goal reference.
	_, err := s.exec("UPDATE profile SET active_goal_id = '' WHERE id = 1 AND active_goal_id = ?", id)
	return err
}

func (s *Store) AddEmergencyContact(c models.EmergencyContact) error {
	_, err := s.exec(
		"INSERT INTO emergency_contacts (id, name, phone, relationship, created_at) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.Name, c.Phone, c.Relationship, formatTime(time.Now()),
	)
	return err
}

func (s *Store) GetEmergencyContacts() ([]models.EmergencyContact, error) {
	rows, err := s.query("SELECT id, name, phone, relationship FROM emergency_contacts ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.EmergencyContact{}
	for rows.Next() {
		var c models.EmergencyContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Relationship); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *Store) DeleteEmergencyContact(id string) error {
	return s.deleteByKey("emergency_contacts", "id", id)
}
