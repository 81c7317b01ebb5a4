package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type RiskTolerance string

const (
	RiskLow    RiskTolerance = "Low"
	RiskMedium RiskTolerance = "Medium"
	RiskHigh   RiskTolerance = "High"
)

func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

type BusinessModel string

const (
	ModelSaaS        BusinessModel = "SaaS"
	ModelMarketplace BusinessModel = "Marketplace"
	ModelECommerce   BusinessModel = "E-commerce"
	ModelServices    BusinessModel = "Services"
	ModelContent     BusinessModel = "Content"
	ModelMobileApp   BusinessModel = "Mobile App"
	ModelOther       BusinessModel = "Other"
)

// BusinessModels lists the accepted business models in form order.
var BusinessModels = []BusinessModel{
	ModelSaaS,
	ModelMarketplace,
	ModelECommerce,
	ModelServices,
	ModelContent,
	ModelMobileApp,
	ModelOther,
}

func (m BusinessModel) Valid() bool {
	for _, known := range BusinessModels {
		if m == known {
			return true
		}
	}
	return false
}

// IdeaRequest is the form input. It lives for one generation call only.
type IdeaRequest struct {
	Skills        string        `json:"skills" validate:"required,notblank"`
	Interests     string        `json:"interests" validate:"required,notblank"`
	Budget        string        `json:"budget" validate:"required,notblank"`
	RiskTolerance RiskTolerance `json:"riskTolerance" validate:"required,risk_tolerance"`
	BusinessModel BusinessModel `json:"businessModel" validate:"required,business_model"`
}

// DefaultIdeaRequest returns the form's initial selections.
func DefaultIdeaRequest() IdeaRequest {
	return IdeaRequest{
		RiskTolerance: RiskMedium,
		BusinessModel: ModelSaaS,
	}
}

// BusinessIdea is the canonical idea schema. Every field is always serialized
// so genuine and fallback ideas share one shape.
type BusinessIdea struct {
	Name               string `json:"name" jsonschema_description:"Short brand name for the business"`
	Problem            string `json:"problem"`
	Solution           string `json:"solution"`
	TargetAudience     string `json:"targetAudience"`
	BusinessModel      string `json:"businessModel"`
	TechStack          string `json:"techStack"`
	Monetization       string `json:"monetization"`
	ChallengesAndRisks string `json:"challengesAndRisks"`
	WhyNow             string `json:"whyNow"`
	HowToBuild         string `json:"howToBuild" jsonschema_description:"Plain-text build plan"`
	AIPrompt           string `json:"aiPrompt" jsonschema_description:"Prompt a developer can paste into an AI coding assistant"`
}

// SchemaFields is the canonical field order used in prompts.
var SchemaFields = []string{
	"name",
	"problem",
	"solution",
	"targetAudience",
	"businessModel",
	"techStack",
	"monetization",
	"challengesAndRisks",
	"whyNow",
	"howToBuild",
	"aiPrompt",
}

const (
	FallbackName    = "Error Parsing Idea"
	FallbackProblem = "Could not parse AI output."
	fallbackDetail  = "Check logs for raw JSON string."
	notAvailable    = "N/A"
)

// FallbackIdea is returned in place of a reply that could not be parsed.
func FallbackIdea() BusinessIdea {
	return BusinessIdea{
		Name:               FallbackName,
		Problem:            FallbackProblem,
		Solution:           fallbackDetail,
		TargetAudience:     notAvailable,
		BusinessModel:      notAvailable,
		TechStack:          notAvailable,
		Monetization:       notAvailable,
		ChallengesAndRisks: notAvailable,
		WhyNow:             notAvailable,
		HowToBuild:         notAvailable,
		AIPrompt:           notAvailable,
	}
}

func (b BusinessIdea) IsFallback() bool {
	return b == FallbackIdea()
}

// UnmarshalJSON also accepts howToBuild as {"description", "aiPrompt"}.
func (b *BusinessIdea) UnmarshalJSON(data []byte) error {
	type plain BusinessIdea
	var aux struct {
		plain
		HowToBuild json.RawMessage `json:"howToBuild"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*b = BusinessIdea(aux.plain)
	if len(aux.HowToBuild) == 0 || string(aux.HowToBuild) == "null" {
		return nil
	}
	if aux.HowToBuild[0] != '{' {
		return json.Unmarshal(aux.HowToBuild, &b.HowToBuild)
	}

	var nested struct {
		Description string `json:"description"`
		AIPrompt    string `json:"aiPrompt"`
	}
	if err := json.Unmarshal(aux.HowToBuild, &nested); err != nil {
		return fmt.Errorf("howToBuild: %w", err)
	}
	b.HowToBuild = nested.Description
	if b.AIPrompt == "" {
		b.AIPrompt = nested.AIPrompt
	}
	return nil
}

type Section struct {
	Title   string
	Content string
}

// Sections returns the result card sections in display order.
func (b BusinessIdea) Sections() []Section {
	return []Section{
		{"Problem It Solves", b.Problem},
		{"Solution and How It Works", b.Solution},
		{"Target Audience", b.TargetAudience},
		{"Business Model", b.BusinessModel},
		{"Tech Stack", b.TechStack},
		{"Monetization Strategy", b.Monetization},
		{"Challenges and Risks", b.ChallengesAndRisks},
		{"Why Now", b.WhyNow},
		{"How to Build It", b.HowToBuild},
		{"AI Prompt", b.AIPrompt},
	}
}

func (b BusinessIdea) Markdown() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# %s\n", b.Name))

	for _, s := range b.Sections() {
		if strings.TrimSpace(s.Content) == "" {
			continue
		}
		builder.WriteString(fmt.Sprintf("\n**%s:**\n%s\n", s.Title, strings.TrimSpace(s.Content)))
	}

	return builder.String()
}
