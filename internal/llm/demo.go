package llm

import (
	"context"
	"encoding/json"

	"github.com/BerylCAtieno/business-idea-generator/internal/catalog"
)

type demoClient struct{}

// NewDemo returns a provider that answers from the built-in idea catalog
// without any network call.
func NewDemo() Completer {
	return demoClient{}
}

func (demoClient) Complete(ctx context.Context, in Completion) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := json.Marshal(catalog.Lookup(in.Request.BusinessModel))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (demoClient) Model() string {
	return "catalog"
}
