package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
)

// validEvent fabrique un événement bien formé, à dégrader par cas de test
func validEvent() *model.ActivityEvent {
	return &model.ActivityEvent{
		UserID:     "user-1",
		Category:   model.CategoryTransportation,
		Summary:    "Vélo au travail",
		XPEarned:   25,
		CO2SavedKg: 1.5,
		MoneySaved: 0.9,
		Source:     model.SourceFreeform,
		SourceRef:  "req-42",
	}
}

func TestValidateAcceptsWellFormedEvent(t *testing.T) {
	assert.NoError(t, Validate(validEvent()))
}

func TestValidateRejectsMissingUser(t *testing.T) {
	e := validEvent()
	e.UserID = ""

	assert.ErrorIs(t, Validate(e), ErrMalformedEvent)
}

func TestValidateRejectsUnknownCategory(t *testing.T) {
	e := validEvent()
	e.Category = "aviation"

	assert.ErrorIs(t, Validate(e), ErrMalformedEvent)
}

func TestValidateRejectsUnknownSource(t *testing.T) {
	e := validEvent()
	e.Source = "import"

	assert.ErrorIs(t, Validate(e), ErrMalformedEvent)
}

func TestValidateRejectsMissingSourceRef(t *testing.T) {
	// Sans source_ref la contrainte d'unicité ne peut pas absorber les
	// doublons : l'événement est rejeté d'office
	e := validEvent()
	e.SourceRef = ""

	assert.ErrorIs(t, Validate(e), ErrMalformedEvent)
}

func TestValidateRejectsNegativeQuantities(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.ActivityEvent)
	}{
		{"xp négatif", func(e *model.ActivityEvent) { e.XPEarned = -1 }},
		{"co2 négatif", func(e *model.ActivityEvent) { e.CO2SavedKg = -0.1 }},
		{"argent négatif", func(e *model.ActivityEvent) { e.MoneySaved = -2.0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEvent()
			tc.mutate(e)
			assert.ErrorIs(t, Validate(e), ErrMalformedEvent)
		})
	}
}

func TestVoidRequiresEventAndOwner(t *testing.T) {
	// L'annulation est contrainte au propriétaire de l'événement : sans owner
	// id l'appel est rejeté avant toute écriture
	ctx := context.Background()

	assert.ErrorIs(t, Void(ctx, "", "user-1", "user-1"), ErrMalformedEvent)
	assert.ErrorIs(t, Void(ctx, "evt-1", "", "user-1"), ErrMalformedEvent)
}

func TestStartOfDayUsesLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata indisponible")
	}

	// 22:30 UTC le 14 juin = 00:30 le 15 juin à Paris : la journée courante
	// commence à minuit heure de Paris, pas à minuit UTC
	now := time.Date(2025, 6, 14, 22, 30, 0, 0, time.UTC)
	got := startOfDay(now, paris)

	assert.True(t, got.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, paris)))
	assert.True(t, got.Equal(time.Date(2025, 6, 14, 22, 0, 0, 0, time.UTC)))
}

func TestStartOfDayNilLocationDefaultsUTC(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	assert.True(t, startOfDay(now, nil).Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestValidateAcceptsZeroQuantities(t *testing.T) {
	// Zéro est une quantité légitime, seules les valeurs négatives sont bannies
	e := validEvent()
	e.XPEarned = 0
	e.CO2SavedKg = 0
	e.MoneySaved = 0

	assert.NoError(t, Validate(e))
}
