package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/ledger"
)

func TestWriteAppendErrorDuplicateIsSuccessNoOp(t *testing.T) {
	// Rejouer un même événement n'est pas un échec : il a déjà été compté une
	// fois, la réponse reste un succès sans nouvel effet
	rec := httptest.NewRecorder()
	err := fmt.Errorf("%w: (user-1, mission, m-42)", ledger.ErrDuplicateEvent)

	writeAppendError(rec, err, "Vélo au travail")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ActivityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "already recorded", resp.Message)
	assert.Equal(t, "Vélo au travail", resp.Summary)
	assert.Equal(t, 0, resp.XPEarned)
}

func TestWriteAppendErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"événement malformé", fmt.Errorf("%w: negative xp", ledger.ErrMalformedEvent), http.StatusBadRequest},
		{"utilisateur inconnu", fmt.Errorf("%w: user-404", ledger.ErrUnknownUser), http.StatusNotFound},
		{"erreur interne", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeAppendError(rec, tc.err, "Vélo au travail")

			assert.Equal(t, tc.expected, rec.Code)

			var resp struct {
				Success bool `json:"success"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.False(t, resp.Success)
		})
	}
}

func TestMissionFinalizationRunsOnDuplicateAppend(t *testing.T) {
	// Un append doublon signifie que l'événement est déjà compté : la mise à
	// jour de statut doit quand même s'exécuter, sinon une mission dont la
	// finalisation a échoué une fois resterait disponible pour toujours
	assert.True(t, missionEventRecorded(nil))
	assert.True(t, missionEventRecorded(fmt.Errorf("%w: (user-1, mission, m-42)", ledger.ErrDuplicateEvent)))

	// Les vrais échecs, eux, court-circuitent la finalisation
	assert.False(t, missionEventRecorded(fmt.Errorf("%w: user-404", ledger.ErrUnknownUser)))
	assert.False(t, missionEventRecorded(errors.New("connection reset")))
}
