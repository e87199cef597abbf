package service

import (
	"strings"

	"adrs/internal/models"
)

var intentTriggers = []string{"what", "how", "why", "explain"}

// ClassifyIntent maps raw input text to a coarse intent category. It is
// deterministic and total: any text, including empty input, classifies.
func ClassifyIntent(text string) models.Intent {
	lowered := strings.ToLower(text)
	for _, trigger := range intentTriggers {
		if strings.Contains(lowered, trigger) {
			return models.IntentInformationQuery
		}
	}
	return models.IntentGeneralInteraction
}
