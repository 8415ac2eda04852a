package decisiontree_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/decisiontree"
	"github.com/aretw0/decisiontree/pkg/domain"
)

func ExampleSkill_Recommend() {
	skill := decisiontree.New()

	job, err := skill.Recommend(map[domain.Category]string{
		domain.CategoryPreferredSpecies: "people",
		domain.CategoryBloodTolerance:   "low",
		domain.CategoryPersonality:      "extrovert",
		domain.CategorySalaryImportance: "very",
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(job.Name)
	// Output: Actor
}

// ExampleSkill_Handle shows a turn where the platform matched one answer to two values.
func ExampleSkill_Handle() {
	skill := decisiontree.New()

	slots := map[string]domain.Slot{}
	for _, c := range domain.RequiredSlots() {
		slots[c.String()] = domain.Slot{Name: c.String()}
	}
	slots["preferredSpecies"] = domain.Slot{
		Name:  "preferredSpecies",
		Value: "creatures",
		Resolutions: []domain.Authority{{
			Code:   domain.CodeSuccessMatch,
			Values: []string{"animals", "people"},
		}},
	}

	resp := skill.Handle(context.Background(), &domain.Request{
		Type:        domain.RequestIntent,
		DialogState: "IN_PROGRESS",
		Intent:      &domain.Intent{Name: "RecommendationIntent", Slots: slots},
	})

	fmt.Println(resp.Speech)
	fmt.Println(resp.Directives[0].Type, resp.Directives[0].SlotToElicit)
	// Output:
	// Which would you like   animals  or  people?
	// Dialog.ElicitSlot preferredSpecies
}
