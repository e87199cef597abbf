package service

import (
	"testing"

	"adrs/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.Intent
	}{
		{"question word what", "What is the capital of France?", models.IntentInformationQuery},
		{"question word how", "how does this work", models.IntentInformationQuery},
		{"question word why", "WHY did it fail", models.IntentInformationQuery},
		{"explain request", "Please explain quicksort", models.IntentInformationQuery},
		{"trigger as substring", "somewhat interesting", models.IntentInformationQuery},
		{"greeting", "Hello there", models.IntentGeneralInteraction},
		{"statement", "Thanks for the help", models.IntentGeneralInteraction},
		{"empty input", "", models.IntentGeneralInteraction},
		{"whitespace only", "   \t\n", models.IntentGeneralInteraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.input))
		})
	}
}

func TestClassifyIntent_Deterministic(t *testing.T) {
	inputs := []string{"What time is it?", "Hello there", "", "explain explain explain"}
	for _, input := range inputs {
		first := ClassifyIntent(input)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ClassifyIntent(input))
		}
	}
}
