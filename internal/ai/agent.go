package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"gastrodesk/internal/core"
)

// AgentService turns free-text requests into validated structured output.
// Nothing an agent proposes is persisted without an explicit confirmation step
// in the calling adapter.
type AgentService interface {
	// ProposeRoster drafts a week of shift assignments for the given staff
	// and shift catalogue, honouring the manager's free-text constraints.
	ProposeRoster(ctx context.Context, weekStart, constraints string, employees []core.Employee, shifts []core.ShiftType) (*core.RosterProposal, error)

	// WriteRecipeCopy drafts menu-facing text for a recipe.
	WriteRecipeCopy(ctx context.Context, recipe core.Recipe, ingredientNames []string) (*core.RecipeCopy, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

func (a *Agent) ProposeRoster(ctx context.Context, weekStart, constraints string, employees []core.Employee, shifts []core.ShiftType) (*core.RosterProposal, error) {
	var staff strings.Builder
	for _, e := range employees {
		fmt.Fprintf(&staff, "- %s: %s (%s), contracted %.0fh/month\n", e.Code, e.Name, e.Role, e.TargetHours)
	}
	var catalogue strings.Builder
	for _, st := range shifts {
		fmt.Fprintf(&catalogue, "- %s: %s (%.2fh)\n", st.Code, st.Name, st.EffectiveHours())
	}

	prompt := fmt.Sprintf(`You are an experienced restaurant shift planner.
Draft a roster for the 7 days starting %s (a Monday).
Rules:
1. Use ONLY the employee codes and shift codes listed below.
2. At most one shift per employee per day.
3. Every date must fall within the week starting %s.
4. Spread hours so each employee tracks their monthly contracted hours.
5. Provide a confidence score (0.0-1.0) and explain your reasoning.

Staff:
%s
Shift catalogue:
%s
Manager constraints: %s`, weekStart, weekStart, staff.String(), catalogue.String(), constraints)

	proposal := &core.RosterProposal{}
	if err := a.structured(ctx, prompt, "roster_proposal",
		"A draft weekly shift roster for restaurant staff", proposal); err != nil {
		return nil, err
	}
	proposal.WeekStart = weekStart

	proposal.Normalize()
	if err := proposal.Validate(); err != nil {
		return nil, fmt.Errorf("roster validation failed: %w", err)
	}
	return proposal, nil
}

func (a *Agent) WriteRecipeCopy(ctx context.Context, recipe core.Recipe, ingredientNames []string) (*core.RecipeCopy, error) {
	prompt := fmt.Sprintf(`You are a restaurant menu copywriter.
Write appealing menu text for the dish below.
Rules:
1. The description is 2-3 sentences; the blurb is one short line for the menu card.
2. Suggest likely allergens from the ingredient list (lowercase names).
3. Do not invent ingredients that are not listed.

Dish: %s (category: %s, %d servings per batch)
Ingredients: %s`, recipe.Name, recipe.Category, recipe.Servings, strings.Join(ingredientNames, ", "))

	copy := &core.RecipeCopy{}
	if err := a.structured(ctx, prompt, "recipe_copy",
		"Menu-facing description text for a dish", copy); err != nil {
		return nil, err
	}

	copy.Normalize()
	if copy.Description == "" {
		return nil, fmt.Errorf("model returned empty description")
	}
	return copy, nil
}

// structured sends one prompt with a strict JSON schema reflected from the
// output struct and unmarshals the reply into it.
func (a *Agent) structured(ctx context.Context, prompt, name, description string, out any) error {
	schemaJSON, err := json.Marshal(generateSchema(out))
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        name,
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt(description),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return fmt.Errorf("empty response content")
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse completion: %w", err)
	}
	return nil
}

func generateSchema(v any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v)
}
