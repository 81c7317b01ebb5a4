package a2a_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BerylCAtieno/business-idea-generator/internal/a2a"
	"github.com/BerylCAtieno/business-idea-generator/internal/generator"
	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

type stubGenerator struct {
	requests []models.IdeaRequest
	idea     models.BusinessIdea
	err      error
}

func (s *stubGenerator) Generate(_ context.Context, req models.IdeaRequest) (generator.Result, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return generator.Result{}, s.err
	}
	return generator.Result{Idea: s.idea, Outcome: generator.OutcomeGenerated}, nil
}

var _ = Describe("A2AHandler", func() {
	var (
		gen    *stubGenerator
		router *gin.Engine
	)

	BeforeEach(func() {
		gen = &stubGenerator{idea: models.BusinessIdea{Name: "FitCode", Problem: "Developers skip workouts"}}
		h := a2a.NewA2AHandler(gen)
		router = gin.New()
		router.GET("/.well-known/agent.json", h.ServeAgentCard)
		router.POST("/a2a/ideas", h.HandleIdeas)
	})

	call := func(body string) a2a.JSONRPCResponse {
		req := httptest.NewRequest(http.MethodPost, "/a2a/ideas", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp a2a.JSONRPCResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	It("serves the agent card", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))

		var card map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &card)).To(Succeed())
		Expect(card).To(HaveKey("skills"))
	})

	It("generates an idea from a data part", func() {
		resp := call(`{"jsonrpc":"2.0","id":"t1","method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[
			{"kind":"data","data":{"skills":"coding","interests":"fitness","budget":"$500","riskTolerance":"Low","businessModel":"Mobile App"}}]}}}`)

		Expect(resp.Error).To(BeNil())
		Expect(string(resp.ID)).To(MatchJSON(`"t1"`))
		Expect(resp.Result.Status.State).To(Equal(a2a.StateCompleted))
		Expect(gen.requests).To(HaveLen(1))
		Expect(gen.requests[0].BusinessModel).To(Equal(models.ModelMobileApp))

		Expect(resp.Result.Artifacts).To(HaveLen(1))
		parts := resp.Result.Artifacts[0].Parts
		Expect(parts[0].Text).To(HavePrefix("# FitCode"))

		var idea models.BusinessIdea
		Expect(json.Unmarshal(parts[1].Data, &idea)).To(Succeed())
		Expect(idea.Name).To(Equal("FitCode"))
	})

	It("echoes numeric ids unchanged", func() {
		resp := call(`{"jsonrpc":"2.0","id":42,"method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[
			{"kind":"text","text":"skills: a\ninterests: b\nbudget: c"}]}}}`)

		Expect(resp.Error).To(BeNil())
		Expect(string(resp.ID)).To(Equal("42"))
		Expect(resp.Result.Status.State).To(Equal(a2a.StateCompleted))
		Expect(resp.Result.ID).NotTo(BeEmpty())
	})

	It("answers null when the id is missing", func() {
		resp := call(`{"jsonrpc":"2.0","method":"tasks/cancel"}`)
		Expect(resp.Error.Code).To(Equal(a2a.CodeMethodNotFound))
		Expect(string(resp.ID)).To(Equal("null"))
	})

	It("keeps the caller's task id", func() {
		resp := call(`{"jsonrpc":"2.0","id":"t5","method":"message/send","params":{"message":{"kind":"message","role":"user","taskId":"task-9","parts":[
			{"kind":"text","text":"skills: a\ninterests: b\nbudget: c"}]}}}`)
		Expect(resp.Result.ID).To(Equal("task-9"))
	})

	It("reads key value lines from text parts and keeps the form defaults", func() {
		resp := call(`{"jsonrpc":"2.0","id":"t2","method":"agent/task","params":{"message":{"kind":"message","role":"user","parts":[
			{"kind":"text","text":"Skills: coding\nInterests: fitness\nBudget: $500"}]}}}`)

		Expect(resp.Result.Status.State).To(Equal(a2a.StateCompleted))
		Expect(gen.requests).To(ConsistOf(models.IdeaRequest{
			Skills:        "coding",
			Interests:     "fitness",
			Budget:        "$500",
			RiskTolerance: models.RiskMedium,
			BusinessModel: models.ModelSaaS,
		}))
	})

	It("asks for input when the request is incomplete", func() {
		resp := call(`{"jsonrpc":"2.0","id":"t3","method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[
			{"kind":"text","text":"Skills: coding\nRisk Tolerance: Extreme"}]}}}`)

		Expect(resp.Result.Status.State).To(Equal(a2a.StateInputRequired))
		Expect(resp.Result.Status.Message.Parts[0].Text).To(ContainSubstring("interests is required"))
		Expect(gen.requests).To(BeEmpty())
	})

	It("reports generation failures as a failed task", func() {
		gen.err = &generator.ConfigurationError{Variable: "OPENAI_API_KEY"}
		resp := call(`{"jsonrpc":"2.0","id":"t4","method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[
			{"kind":"text","text":"skills: a\ninterests: b\nbudget: c"}]}}}`)

		Expect(resp.Result.Status.State).To(Equal(a2a.StateFailed))
		Expect(resp.Result.Status.Message.Parts[0].Text).To(ContainSubstring("Missing OPENAI_API_KEY"))
	})

	DescribeTable("returns JSON-RPC errors",
		func(body string, code int) {
			resp := call(body)
			Expect(resp.Result).To(BeNil())
			Expect(resp.Error).NotTo(BeNil())
			Expect(resp.Error.Code).To(Equal(code))
			Expect(gen.requests).To(BeEmpty())
		},
		Entry("malformed body", `{"jsonrpc":`, a2a.CodeParseError),
		Entry("wrong version", `{"jsonrpc":"1.0","id":"x","method":"message/send"}`, a2a.CodeInvalidRequest),
		Entry("unknown method", `{"jsonrpc":"2.0","id":"x","method":"tasks/cancel"}`, a2a.CodeMethodNotFound),
		Entry("bad params", `{"jsonrpc":"2.0","id":"x","method":"message/send","params":[1]}`, a2a.CodeInvalidParams),
	)
})

var _ = Describe("ExtractIdeaRequest", func() {
	It("prefers a data part over text", func() {
		data, err := a2a.DataPart(map[string]string{"skills": "s", "interests": "i", "budget": "b"})
		Expect(err).NotTo(HaveOccurred())

		req, err := a2a.ExtractIdeaRequest(a2a.Message{Parts: []a2a.MessagePart{a2a.TextPart("skills: ignored"), data}})
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Skills).To(Equal("s"))
		Expect(req.RiskTolerance).To(Equal(models.RiskMedium))
	})

	It("fails when nothing recognisable is sent", func() {
		_, err := a2a.ExtractIdeaRequest(a2a.Message{Parts: []a2a.MessagePart{a2a.TextPart("give me an idea")}})
		Expect(err).To(HaveOccurred())
	})

	It("rejects a data part of the wrong shape", func() {
		_, err := a2a.ExtractIdeaRequest(a2a.Message{Parts: []a2a.MessagePart{{Kind: "data", Data: []byte(`{"skills":1}`)}}})
		var typeErr *json.UnmarshalTypeError
		Expect(errors.As(err, &typeErr)).To(BeTrue())
	})
})
