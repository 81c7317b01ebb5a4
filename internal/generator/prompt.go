package generator

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

type Prompt struct {
	System string
	User   string
}

// BuildPrompt is deterministic: the same request always yields the same prompt.
func BuildPrompt(req models.IdeaRequest) Prompt {
	return Prompt{
		System: systemPrompt,
		User: fmt.Sprintf(`Skills: %s
Interests: %s
Budget: %s
Risk Tolerance: %s
Preferred Business Model: %s

Generate that JSON for a single idea that fits these constraints, focusing on a thorough "aiPrompt"
with security, testing, iterative development and environment setup.`,
			req.Skills,
			req.Interests,
			req.Budget,
			req.RiskTolerance,
			req.BusinessModel,
		),
	}
}

var systemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	var schema strings.Builder
	schema.WriteString("{\n")
	for i, field := range models.SchemaFields {
		schema.WriteString(fmt.Sprintf("  %q: string", field))
		if i < len(models.SchemaFields)-1 {
			schema.WriteString(",")
		}
		schema.WriteString("\n")
	}
	schema.WriteString("}")

	return fmt.Sprintf(`You are a helpful business idea generator. The user will give you their skills, interests, budget, risk tolerance, and a preferred business model. Return a single JSON object with exactly these fields, in this order:
%s
Every field is a plain string. "howToBuild" is a plain string, not an object.
The "aiPrompt" must be advanced enough to help the developer start building with best practices.
Output only valid JSON. No extra keys, no markdown, no commentary.`, schema.String())
}
