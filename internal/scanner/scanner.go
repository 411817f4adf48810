package scanner

import (
	"database/sql"

	"github.com/lib/pq"

	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

// ScanUserProfile scanne une ligne SQL vers un UserProfile
// Utilise les types sql.Null* et les convertit automatiquement
func ScanUserProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, timezone, provider sql.NullString
	var updatedBy sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &timezone, &provider,
		&user.TotalXP, &user.TotalCO2SavedKg, &user.TotalMoneySaved,
		&user.TotalMissionsCompleted,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
		&user.CreatedBy, &updatedBy,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	user.Avatar = utils.NullStringToString(avatar)
	user.Timezone = utils.NullStringToString(timezone)
	user.Provider = utils.NullStringToString(provider)
	user.UpdatedBy = utils.NullStringToPointer(updatedBy)

	return &user, nil
}

// ScanActivityEvent scanne une ligne SQL vers un ActivityEvent
func ScanActivityEvent(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.ActivityEvent, error) {
	var e model.ActivityEvent
	var userInput, emoji, voidedBy sql.NullString
	var co2, money sql.NullFloat64
	var voidedAt sql.NullTime

	err := scanner.Scan(
		&e.ID, &e.UserID, &e.OccurredAt, &e.Category, &e.Summary, &userInput, &emoji,
		&e.XPEarned, &co2, &money, &e.Source, &e.SourceRef,
		&voidedAt, &voidedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.UserInput = utils.NullStringToPointer(userInput)
	e.Emoji = utils.NullStringToString(emoji)
	e.CO2SavedKg = utils.NullFloat64ToFloat64(co2)
	e.MoneySaved = utils.NullFloat64ToFloat64(money)
	e.VoidedAt = utils.NullTimeToPointer(voidedAt)
	e.VoidedBy = utils.NullStringToPointer(voidedBy)

	return &e, nil
}

// ScanMission scanne une ligne SQL vers une Mission avec pq.Array pour les tips
func ScanMission(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Mission, error) {
	var m model.Mission
	var co2, money sql.NullFloat64

	err := scanner.Scan(
		&m.ID, &m.UserID, &m.Title, &m.Description, &m.Category,
		&co2, &money, &m.XPReward, &m.MissionType, pq.Array(&m.Tips),
		&m.Status, &m.CompletedAt, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.CO2SavedKg = utils.NullFloat64ToFloat64(co2)
	m.MoneySaved = utils.NullFloat64ToFloat64(money)

	return &m, nil
}
