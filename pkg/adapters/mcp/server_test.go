package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/decisiontree"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(decisiontree.New())
}

func TestRecommend(t *testing.T) {
	s := newTestServer()

	got, err := s.handleRecommend(context.Background(), mcp.CallToolRequest{}, Answers{
		SalaryImportance: "unimportant",
		Personality:      "shy",
		BloodTolerance:   "a lot",
		PreferredSpecies: "Animals",
	})
	require.NoError(t, err)
	assert.Equal(t, "unimportant-introvert-high-animals", got.Key)
	assert.Equal(t, "Animal Control Worker", got.Outcome.Name)
	assert.Contains(t, got.Statement, "you can tolerate blood")
}

func TestRecommend_RejectsUnresolvedAnswers(t *testing.T) {
	s := newTestServer()

	_, err := s.handleRecommend(context.Background(), mcp.CallToolRequest{}, Answers{
		SalaryImportance: "money",
		Personality:      "grumpy",
		BloodTolerance:   "",
		PreferredSpecies: "people",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "ambiguous")
	assert.ErrorContains(t, err, `"grumpy" is not one of`)
	assert.ErrorContains(t, err, "bloodTolerance: answer is required")
}

func TestDecideTurn(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	t.Run("disambiguation", func(t *testing.T) {
		got, err := s.handleDecideTurn(ctx, mcp.CallToolRequest{}, TurnArgs{Answers: Answers{PreferredSpecies: "creatures"}})
		require.NoError(t, err)
		assert.Equal(t, "Which would you like   animals  or  people?", got.Speech)
		require.Len(t, got.Directives, 1)
		assert.Equal(t, domain.OutputElicitSlot, got.Directives[0].Type)
	})

	t.Run("open question", func(t *testing.T) {
		got, err := s.handleDecideTurn(ctx, mcp.CallToolRequest{}, TurnArgs{Answers: Answers{PreferredSpecies: "people", Personality: "grumpy"}})
		require.NoError(t, err)
		assert.Equal(t, "What personality are you looking for", got.Speech)
	})

	t.Run("delegate", func(t *testing.T) {
		got, err := s.handleDecideTurn(ctx, mcp.CallToolRequest{}, TurnArgs{Answers: Answers{PreferredSpecies: "people"}})
		require.NoError(t, err)
		require.Len(t, got.Directives, 1)
		assert.Equal(t, domain.OutputDelegate, got.Directives[0].Type)
	})

	t.Run("completed", func(t *testing.T) {
		got, err := s.handleDecideTurn(ctx, mcp.CallToolRequest{}, TurnArgs{
			Answers:   Answers{SalaryImportance: "very", Personality: "extrovert", BloodTolerance: "low", PreferredSpecies: "people"},
			Completed: true,
		})
		require.NoError(t, err)
		require.NotNil(t, got.Outcome)
		assert.Equal(t, "Actor", got.Outcome.Name)
		assert.True(t, got.ShouldEndSession)
	})
}

func TestListOutcomes(t *testing.T) {
	res, err := newTestServer().handleListOutcomes(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var entries []outcome.Entry
	require.NoError(t, json.Unmarshal([]byte(text.Text), &entries))
	assert.Len(t, entries, 24)
}

func TestReadOutcomesResource(t *testing.T) {
	contents, err := newTestServer().readOutcomes(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, OutcomesURI, text.URI)

	table, err := outcome.Load(strings.NewReader(text.Text))
	require.NoError(t, err)
	assert.Equal(t, outcome.Default().Mapping(), table.Mapping())
}
