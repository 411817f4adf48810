package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/config"
)

// Classification est l'enregistrement canonique produit par le classifieur
// externe à partir d'un texte libre. Le moteur ne fait aucune analyse de
// langage lui-même : il consomme ce contrat tel quel.
type Classification struct {
	Summary    string  `json:"summary"`
	Category   string  `json:"category"`
	Emoji      string  `json:"emoji"`
	CO2SavedKg float64 `json:"co2_saved_kg"`
	Confidence int     `json:"confidence"` // 0-100 ; < 50 = non reconnu comme éco-geste
}

// ActivityClassifier est le collaborateur NLP externe
type ActivityClassifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

// Classifier est l'instance configurée au démarrage (nil = non configuré)
var Classifier ActivityClassifier

// HTTPClassifier appelle le service de classification distant
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClassifier construit le client du classifieur depuis la config
func NewHTTPClassifier(cfg *config.Config) (*HTTPClassifier, error) {
	if cfg.ClassifierURL == "" {
		return nil, fmt.Errorf("classifier URL is missing")
	}
	return &HTTPClassifier{
		baseURL: cfg.ClassifierURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Classify envoie le texte au service et décode l'enregistrement canonique
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not decode classifier response: %w", err)
	}

	return &result, nil
}
