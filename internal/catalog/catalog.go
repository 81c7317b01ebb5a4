// Package catalog holds the pre-written ideas served by the offline demo provider.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

//go:embed ideas.yaml
var ideasYAML []byte

var ideas = mustParse(ideasYAML)

type template struct {
	Name               string `yaml:"name"`
	Problem            string `yaml:"problem"`
	Solution           string `yaml:"solution"`
	TargetAudience     string `yaml:"target_audience"`
	BusinessModel      string `yaml:"business_model"`
	TechStack          string `yaml:"tech_stack"`
	Monetization       string `yaml:"monetization"`
	ChallengesAndRisks string `yaml:"challenges_and_risks"`
	WhyNow             string `yaml:"why_now"`
	HowToBuild         string `yaml:"how_to_build"`
	AIPrompt           string `yaml:"ai_prompt"`
}

func (t template) idea() models.BusinessIdea {
	return models.BusinessIdea{
		Name:               t.Name,
		Problem:            t.Problem,
		Solution:           t.Solution,
		TargetAudience:     t.TargetAudience,
		BusinessModel:      t.BusinessModel,
		TechStack:          t.TechStack,
		Monetization:       t.Monetization,
		ChallengesAndRisks: t.ChallengesAndRisks,
		WhyNow:             t.WhyNow,
		HowToBuild:         t.HowToBuild,
		AIPrompt:           t.AIPrompt,
	}
}

// Parse decodes a catalog keyed by business model. Unknown models are rejected.
func Parse(data []byte) (map[models.BusinessModel]models.BusinessIdea, error) {
	var raw map[string]template
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse idea catalog: %w", err)
	}

	out := make(map[models.BusinessModel]models.BusinessIdea, len(raw))
	for key, t := range raw {
		model := models.BusinessModel(key)
		if !model.Valid() {
			return nil, fmt.Errorf("idea catalog: unknown business model %q", key)
		}
		out[model] = t.idea()
	}
	return out, nil
}

func mustParse(data []byte) map[models.BusinessModel]models.BusinessIdea {
	parsed, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return parsed
}

// Lookup returns the template idea for a business model, falling back to SaaS.
func Lookup(model models.BusinessModel) models.BusinessIdea {
	if idea, ok := ideas[model]; ok {
		return idea
	}
	return ideas[models.ModelSaaS]
}
