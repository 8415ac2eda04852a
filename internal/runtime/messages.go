package runtime

import (
	"fmt"

	"github.com/aretw0/decisiontree/pkg/domain"
)

// SkillName is the spoken name of the skill.
const SkillName = "Decision Tree"

const (
	welcomeMessage  = "Welcome to Decision Tree. I will recommend the best job for you. Do you want to start your career or be a couch potato?"
	welcomeReprompt = "Do you want a career or to be a couch potato?"

	helpMessage  = "This is Decision Tree. I can help you find the perfect job. You can say, recommend a job."
	helpReprompt = "Would you like a career or do you want to be a couch potato?"

	couchPotatoMessage = "You don't want to start your career? Have fun wasting away on the couch."
	goodbyeMessage     = "Bye"

	fallbackMessage  = "The " + SkillName + " skill can't help you with that. It can recommend the best job for you. Do you want to start your career or be a couch potato?"
	fallbackReprompt = "What can I help you with?"

	apologyMessage   = "Sorry, I can't understand the command. Please say again."
	noOutcomeMessage = "I could not determine a recommendation for those answers. Please try again."
)

// FinalStatement is spoken once the answers resolve to an outcome.
func FinalStatement(values map[domain.Category]string, outcome domain.Outcome) string {
	tolerance := "can't"
	if values[domain.CategoryBloodTolerance] == "high" {
		tolerance = "can"
	}
	return fmt.Sprintf("So you want to be %s. You are an %s, you like %s and you %s tolerate blood. You should consider being a %s.",
		values[domain.CategorySalaryImportance],
		values[domain.CategoryPersonality],
		values[domain.CategoryPreferredSpecies],
		tolerance,
		outcome.Name,
	)
}
