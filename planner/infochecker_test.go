package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cenone/llm"
	"cenone/models"
	"cenone/schema"
)

func TestAskMissingInfo(t *testing.T) {
	checker := NewInfoChecker()

	questions := checker.AskMissingInfo(nil, []string{"number_of_guests"})
	assert.Contains(t, questions, "How many guests are you expecting for Christmas dinner?")
	assert.Contains(t, questions, "Are there any vegetarian or vegan guests?")
	assert.Contains(t, questions, "Does anyone have food allergies I should be aware of?")
}

func TestAskMissingInfoComplete(t *testing.T) {
	checker := NewInfoChecker()
	prefs := &models.UserPreferences{
		NumberOfGuests: 8,
		HasVegetarians: true,
		Allergies:      []models.Allergy{models.AllergyNuts},
	}

	questions := checker.AskMissingInfo(prefs, nil)
	assert.Equal(t, "I have all the information I need!", questions)
}

func TestInfoCheckerClearMemory(t *testing.T) {
	checker := NewInfoChecker()
	assert.Equal(t, "info_checker", checker.Name())

	checker.agent.NewMessage(llm.UserRole, schema.String("8 guests, one vegan"))
	assert.Equal(t, 1, checker.agent.Memory().MessageCount())
	checker.ClearMemory()
	assert.Equal(t, 0, checker.agent.Memory().MessageCount())
}

func TestAskMissingInfoPartial(t *testing.T) {
	checker := NewInfoChecker()
	prefs := &models.UserPreferences{NumberOfGuests: 8}

	questions := checker.AskMissingInfo(prefs, nil)
	assert.NotContains(t, questions, "How many guests")
	assert.Contains(t, questions, "vegetarian or vegan")
	assert.Contains(t, questions, "food allergies")
}
