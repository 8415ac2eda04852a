/*
Package decisiontree implements the Decision Tree voice skill: it asks four questions
(preferred species, blood tolerance, personality and salary importance) and recommends
one of twenty-one jobs.

The voice platform owns the conversation. It collects slot values, runs entity
resolution and tracks the dialog state; every turn arrives as a stateless request.
The skill only decides what to do next with what the platform already has:

  - disambiguate a slot that resolved to several canonical values,
  - re-ask a slot that matched nothing,
  - delegate the next question back to the platform,
  - or, once the dialog is complete, resolve the answers to a job.

# Usage

Hosts embed the Skill and translate their transport into domain requests.

	skill := decisiontree.New(
		decisiontree.WithLogger(logger),
		decisiontree.WithPromptStyle(dialog.PromptNatural),
	)

	resp := skill.Handle(ctx, &domain.Request{
		Type:      domain.RequestLaunch,
		SessionID: "amzn1.echo-api.session.123",
	})
	fmt.Println(resp.Speech)

Answers can also be resolved directly, without a dialog:

	job, err := skill.Recommend(map[domain.Category]string{
		domain.CategoryPreferredSpecies: "people",
		domain.CategoryBloodTolerance:   "low",
		domain.CategoryPersonality:      "extrovert",
		domain.CategorySalaryImportance: "very",
	})

# Adapters

The pkg/adapters tree carries the ready-made hosts and stores: an HTTP endpoint that
speaks the Alexa request/response envelope, an MCP server for agents, and session
audit stores backed by memory, files or Redis. The decisiontree command wires them
together from configuration.
*/
package decisiontree
