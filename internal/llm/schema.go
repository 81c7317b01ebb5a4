package llm

import (
	"github.com/invopop/jsonschema"

	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

// IdeaSchema is the strict JSON schema of models.BusinessIdea: every field
// required, no additional properties.
func IdeaSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&models.BusinessIdea{})
}
