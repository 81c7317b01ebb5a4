package llm_test

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BerylCAtieno/business-idea-generator/internal/catalog"
	"github.com/BerylCAtieno/business-idea-generator/internal/llm"
	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

var _ = Describe("New", func() {
	DescribeTable("builds each provider",
		func(cfg llm.Config, model string) {
			c, err := llm.New(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Model()).To(Equal(model))
		},
		Entry("openai", llm.Config{Provider: "openai", APIKey: "k", Model: "gpt-4o"}, "gpt-4o"),
		Entry("gemini without key", llm.Config{Provider: "gemini"}, "gemini-2.5-flash-lite"),
		Entry("ollama", llm.Config{Provider: "ollama", BaseURL: "http://localhost:11434", Model: "llama3"}, "llama3"),
		Entry("demo", llm.Config{Provider: "demo"}, "catalog"),
	)

	It("rejects unknown providers", func() {
		_, err := llm.New(context.Background(), llm.Config{Provider: "bard"})
		Expect(err).To(MatchError(ContainSubstring("unknown llm provider")))
	})

	It("rejects a malformed ollama host", func() {
		_, err := llm.New(context.Background(), llm.Config{Provider: "ollama", BaseURL: "http://[::1"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Gemini completer without a key", func() {
	It("fails every call", func() {
		g, err := llm.NewGemini(context.Background(), llm.Config{})
		Expect(err).NotTo(HaveOccurred())
		_, err = g.Complete(context.Background(), llm.Completion{})
		Expect(err).To(MatchError(ContainSubstring("no API key")))
		Expect(g.Close()).To(Succeed())
	})
})

var _ = Describe("Demo completer", func() {
	It("answers with the catalog idea for the requested model as JSON", func() {
		text, err := llm.NewDemo().Complete(context.Background(), llm.Completion{
			Request: models.IdeaRequest{BusinessModel: models.ModelContent},
		})
		Expect(err).NotTo(HaveOccurred())

		var idea models.BusinessIdea
		Expect(json.Unmarshal([]byte(text), &idea)).To(Succeed())
		Expect(idea).To(Equal(catalog.Lookup(models.ModelContent)))
	})

	It("honours a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := llm.NewDemo().Complete(ctx, llm.Completion{})
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("IdeaSchema", func() {
	It("requires every canonical field and forbids others", func() {
		data, err := json.Marshal(llm.IdeaSchema())
		Expect(err).NotTo(HaveOccurred())

		var schema map[string]any
		Expect(json.Unmarshal(data, &schema)).To(Succeed())
		Expect(schema).To(HaveKeyWithValue("type", "object"))
		Expect(schema).To(HaveKeyWithValue("additionalProperties", false))

		required := []string{}
		for _, r := range schema["required"].([]any) {
			required = append(required, r.(string))
		}
		Expect(required).To(ConsistOf(models.SchemaFields))

		props := schema["properties"].(map[string]any)
		Expect(props).To(HaveLen(len(models.SchemaFields)))
	})
})
