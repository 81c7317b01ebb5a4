package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BerylCAtieno/business-idea-generator/internal/client"
	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

func main() {
	defaults := models.DefaultIdeaRequest()

	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the idea server")
	skills := flag.String("skills", "", "Your skills (required)")
	interests := flag.String("interests", "", "Your interests (required)")
	budget := flag.String("budget", "", "Startup budget, e.g. $500 (required)")
	risk := flag.String("risk", string(defaults.RiskTolerance), "Risk tolerance: Low, Medium, High")
	model := flag.String("model", string(defaults.BusinessModel), "Preferred business model: "+modelChoices())
	asJSON := flag.Bool("json", false, "Print the raw idea JSON instead of the result card")
	check := flag.Bool("check", false, "Only check that the server is up and serves its agent card")
	timeout := flag.Duration("timeout", client.DefaultTimeout, "How long to wait for an idea")
	flag.Parse()

	if *check {
		if !runChecks(*baseURL) {
			os.Exit(1)
		}
		return
	}

	req := models.IdeaRequest{
		Skills:        *skills,
		Interests:     *interests,
		Budget:        *budget,
		RiskTolerance: models.RiskTolerance(*risk),
		BusinessModel: models.BusinessModel(*model),
	}

	printHeader("Business Idea Generator")
	fmt.Printf("%sServer:%s %s\n", colorCyan, colorReset, *baseURL)
	fmt.Printf("%sSkills:%s %s\n", colorCyan, colorReset, req.Skills)
	fmt.Printf("%sInterests:%s %s\n", colorCyan, colorReset, req.Interests)
	fmt.Printf("%sBudget:%s %s\n", colorCyan, colorReset, req.Budget)
	fmt.Printf("%sRisk Tolerance:%s %s\n", colorCyan, colorReset, req.RiskTolerance)
	fmt.Printf("%sBusiness Model:%s %s\n\n", colorCyan, colorReset, req.BusinessModel)

	session := client.NewSession(client.New(*baseURL, client.WithTimeout(*timeout)))

	fmt.Printf("%sGenerating your idea...%s\n", colorYellow, colorReset)
	idea, err := session.Submit(context.Background(), req)
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}

	if *asJSON {
		data, _ := json.Marshal(idea)
		printJSON(data)
		return
	}
	printIdea(idea)
}

func reportFailure(err error) {
	var verr *models.ValidationError
	var netErr *client.NetworkError
	switch {
	case errors.As(err, &verr):
		printError("The form is incomplete:")
		for _, p := range verr.Problems {
			fmt.Printf("  - %s\n", p)
		}
		fmt.Println("\nRun with -h to see every flag.")
	case errors.As(err, &netErr) && netErr.Timeout():
		printError("The server took too long to answer.")
		fmt.Println("Try again, or raise -timeout.")
	case errors.As(err, &netErr):
		printError(err.Error())
		fmt.Println("Something went wrong. Please try again.")
	default:
		printError(err.Error())
	}
}

func printIdea(idea *models.BusinessIdea) {
	if idea.IsFallback() {
		printError("The generator could not produce a readable idea this time. Please try again.")
		fmt.Println()
	} else {
		printSuccess("Idea generated")
	}

	printHeader(idea.Name)
	for _, s := range idea.Sections() {
		if s.Content == "" {
			continue
		}
		color := colorGreen
		if s.Title == "AI Prompt" {
			color = colorPurple
		}
		fmt.Printf("%s%s%s\n", color, s.Title, colorReset)
		fmt.Println(s.Content)
		fmt.Println(strings.Repeat("-", 80))
	}
}

func modelChoices() string {
	names := make([]string, len(models.BusinessModels))
	for i, m := range models.BusinessModels {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func runChecks(baseURL string) bool {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	printHeader("Business Idea Generator - Server Check")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)

	passed := checkHealth(httpClient, baseURL)
	fmt.Println()
	passed = checkAgentCard(httpClient, baseURL) && passed
	return passed
}

func checkHealth(hc *http.Client, baseURL string) bool {
	printTestHeader("Health Check")

	url := fmt.Sprintf("%s/health", baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := hc.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err != nil || health.Status != "ok" {
		printError(fmt.Sprintf("Unexpected health body '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func checkAgentCard(hc *http.Client, baseURL string) bool {
	printTestHeader("Agent Card")

	url := fmt.Sprintf("%s/.well-known/agent.json", baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := hc.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[CHECK] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
