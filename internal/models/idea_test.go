package models_test

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

var _ = Describe("IdeaRequest", func() {
	valid := func() models.IdeaRequest {
		return models.IdeaRequest{
			Skills:        "coding",
			Interests:     "fitness",
			Budget:        "$500",
			RiskTolerance: models.RiskMedium,
			BusinessModel: models.ModelSaaS,
		}
	}

	It("accepts a complete request", func() {
		Expect(valid().Validate()).To(Succeed())
	})

	It("accepts every listed business model", func() {
		for _, m := range models.BusinessModels {
			req := valid()
			req.BusinessModel = m
			Expect(req.Validate()).To(Succeed(), string(m))
		}
	})

	It("names each missing field by its JSON key", func() {
		err := models.IdeaRequest{RiskTolerance: models.RiskLow, BusinessModel: models.ModelOther}.Validate()

		var verr *models.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Problems).To(ConsistOf(
			"skills is required",
			"interests is required",
			"budget is required",
		))
	})

	It("treats whitespace-only text as missing", func() {
		req := valid()
		req.Skills = "   "
		req.Interests = "\t"
		req.Budget = " \n "

		var verr *models.ValidationError
		Expect(errors.As(req.Validate(), &verr)).To(BeTrue())
		Expect(verr.Problems).To(ConsistOf(
			"skills is required",
			"interests is required",
			"budget is required",
		))
	})

	DescribeTable("rejects values outside the enums",
		func(mutate func(*models.IdeaRequest), fragment string) {
			req := valid()
			mutate(&req)
			err := req.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(fragment))
		},
		Entry("unknown risk", func(r *models.IdeaRequest) { r.RiskTolerance = "Extreme" }, `riskTolerance must be one of Low, Medium, High (got "Extreme")`),
		Entry("lowercase risk", func(r *models.IdeaRequest) { r.RiskTolerance = "low" }, "riskTolerance"),
		Entry("unknown model", func(r *models.IdeaRequest) { r.BusinessModel = "Franchise" }, `businessModel must be one of SaaS`),
		Entry("model without space", func(r *models.IdeaRequest) { r.BusinessModel = "MobileApp" }, "businessModel"),
	)

	It("defaults to the form's initial selections", func() {
		req := models.DefaultIdeaRequest()
		Expect(req.RiskTolerance).To(Equal(models.RiskMedium))
		Expect(req.BusinessModel).To(Equal(models.ModelSaaS))
	})
})

var _ = Describe("BusinessIdea", func() {
	It("always serializes the full canonical field set", func() {
		data, err := json.Marshal(models.BusinessIdea{Name: "Only a name"})
		Expect(err).NotTo(HaveOccurred())

		var fields map[string]any
		Expect(json.Unmarshal(data, &fields)).To(Succeed())
		Expect(fields).To(HaveLen(len(models.SchemaFields)))
		for _, key := range models.SchemaFields {
			Expect(fields).To(HaveKey(key))
		}
	})

	It("builds a fallback that mirrors the canonical schema", func() {
		data, err := json.Marshal(models.FallbackIdea())
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(MatchJSON(`{
			"name": "Error Parsing Idea",
			"problem": "Could not parse AI output.",
			"solution": "Check logs for raw JSON string.",
			"targetAudience": "N/A",
			"businessModel": "N/A",
			"techStack": "N/A",
			"monetization": "N/A",
			"challengesAndRisks": "N/A",
			"whyNow": "N/A",
			"howToBuild": "N/A",
			"aiPrompt": "N/A"
		}`))
		Expect(models.FallbackIdea().IsFallback()).To(BeTrue())
		Expect(models.BusinessIdea{Name: "FitCode"}.IsFallback()).To(BeFalse())
	})

	Describe("decoding", func() {
		It("keeps flat string values as they are", func() {
			var idea models.BusinessIdea
			Expect(json.Unmarshal([]byte(`{"name":"FitCode","howToBuild":"h","aiPrompt":"a"}`), &idea)).To(Succeed())
			Expect(idea.Name).To(Equal("FitCode"))
			Expect(idea.HowToBuild).To(Equal("h"))
			Expect(idea.AIPrompt).To(Equal("a"))
		})

		It("flattens the nested howToBuild variant", func() {
			var idea models.BusinessIdea
			raw := `{"name":"FitCode","howToBuild":{"description":"Start small","aiPrompt":"Build a tracker"}}`
			Expect(json.Unmarshal([]byte(raw), &idea)).To(Succeed())
			Expect(idea.HowToBuild).To(Equal("Start small"))
			Expect(idea.AIPrompt).To(Equal("Build a tracker"))
		})

		It("prefers a top-level aiPrompt over the nested one", func() {
			var idea models.BusinessIdea
			raw := `{"aiPrompt":"top","howToBuild":{"description":"d","aiPrompt":"nested"}}`
			Expect(json.Unmarshal([]byte(raw), &idea)).To(Succeed())
			Expect(idea.AIPrompt).To(Equal("top"))
		})

		It("ignores unknown keys", func() {
			var idea models.BusinessIdea
			Expect(json.Unmarshal([]byte(`{"name":"x","extra":"y"}`), &idea)).To(Succeed())
			Expect(idea.Name).To(Equal("x"))
		})

		It("fails on non-string field values", func() {
			var idea models.BusinessIdea
			Expect(json.Unmarshal([]byte(`{"name":42}`), &idea)).NotTo(Succeed())
			Expect(json.Unmarshal([]byte(`{"howToBuild":[1,2]}`), &idea)).NotTo(Succeed())
		})
	})

	It("renders sections in result card order and skips empty ones", func() {
		idea := models.BusinessIdea{Name: "FitCode", Problem: "p", AIPrompt: "a"}
		Expect(idea.Sections()).To(HaveLen(10))
		Expect(idea.Sections()[0].Title).To(Equal("Problem It Solves"))

		md := idea.Markdown()
		Expect(md).To(HavePrefix("# FitCode\n"))
		Expect(md).To(ContainSubstring("**Problem It Solves:**\np\n"))
		Expect(md).To(ContainSubstring("**AI Prompt:**\na\n"))
		Expect(md).NotTo(ContainSubstring("Why Now"))
	})
})
