package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase  string
	client   = &http.Client{Timeout: 60 * time.Second}
	resultID string
)

func main() {
	fmt.Println("=== BodyLens E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Println()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Analyze Photo", testAnalyzePhoto},
		{"Get Result", testGetResult},
		{"Download Photo", testDownloadPhoto},
		{"Download Report (PDF)", testDownloadReport},
		{"Generate Meal Plan", testGenerateMealPlan},
		{"Modify Meal", testModifyMeal},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	req, err := http.NewRequest("GET", apiBase+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

func testAnalyzePhoto() error {
	// Minimal PNG image (1x1 pixel)
	pngData := []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52, // IHDR chunk
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, // width=1, height=1
		0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
		0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41, // IDAT chunk
		0x54, 0x08, 0xD7, 0x63, 0xF8, 0xCF, 0xC0, 0x00,
		0x00, 0x03, 0x01, 0x01, 0x00, 0x18, 0xDD, 0x8D,
		0xB4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, // IEND chunk
		0x44, 0xAE, 0x42, 0x60, 0x82,
	}

	var b bytes.Buffer
	boundary := "----SmokeTestBoundary123"
	w := io.Writer(&b)

	fields := map[string]string{
		"age":      "28",
		"height":   "178",
		"weight":   "74.5",
		"gender":   "male",
		"activity": "moderate",
	}
	for name, value := range fields {
		fmt.Fprintf(w, "--%s\r\n", boundary)
		fmt.Fprintf(w, "Content-Disposition: form-data; name=%q\r\n\r\n", name)
		fmt.Fprintf(w, "%s\r\n", value)
	}

	fmt.Fprintf(w, "--%s\r\n", boundary)
	fmt.Fprintf(w, "Content-Disposition: form-data; name=\"image\"; filename=\"test.png\"\r\n")
	fmt.Fprintf(w, "Content-Type: image/png\r\n\r\n")
	w.Write(pngData)
	fmt.Fprintf(w, "\r\n--%s--\r\n", boundary)

	req, err := http.NewRequest("POST", apiBase+"/v1/analysis", &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/form-data; boundary=%s", boundary))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		ResultID          string  `json:"resultId"`
		BodyFatPercentage float64 `json:"bodyFatPercentage"`
		BodyType          string  `json:"bodyType"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if result.ResultID == "" {
		return fmt.Errorf("no resultId in response")
	}
	if result.BodyFatPercentage <= 0 {
		return fmt.Errorf("bodyFatPercentage is %v", result.BodyFatPercentage)
	}

	resultID = result.ResultID
	return nil
}

func testGetResult() error {
	if resultID == "" {
		return fmt.Errorf("no result ID from analysis step")
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/analysis/%s", apiBase, resultID), nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		ResultID   string `json:"resultId"`
		UserInputs struct {
			Age int `json:"age"`
		} `json:"userInputs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if result.ResultID != resultID {
		return fmt.Errorf("resultId mismatch: got %s want %s", result.ResultID, resultID)
	}
	if result.UserInputs.Age != 28 {
		return fmt.Errorf("userInputs.age is %d", result.UserInputs.Age)
	}

	return nil
}

func testDownloadPhoto() error {
	if resultID == "" {
		return fmt.Errorf("no result ID from analysis step")
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/analysis/%s/photo", apiBase, resultID), nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) < 10 {
		return fmt.Errorf("photo too small: %d bytes", len(data))
	}

	return nil
}

func testDownloadReport() error {
	if resultID == "" {
		return fmt.Errorf("no result ID from analysis step")
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/analysis/%s/report", apiBase, resultID), nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return fmt.Errorf("response is not a PDF (%d bytes)", len(data))
	}

	return nil
}

func testGenerateMealPlan() error {
	payload := map[string]interface{}{
		"userProfile": map[string]interface{}{
			"age":           28,
			"gender":        "male",
			"height":        178,
			"weight":        74.5,
			"activityLevel": "moderate",
		},
		"mealPlanData": map[string]interface{}{
			"goal":         "weight-loss",
			"restrictions": "vegetarian",
			"preferences":  "quick meals",
		},
	}

	resp, err := postJSON("/v1/mealplans/generate", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Metadata struct {
			RequestID string `json:"requestId"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if !strings.HasPrefix(result.Metadata.RequestID, "meal_") {
		return fmt.Errorf("unexpected requestId %q", result.Metadata.RequestID)
	}

	return nil
}

func testModifyMeal() error {
	payload := map[string]interface{}{
		"currentMeal": map[string]interface{}{
			"type":     "lunch",
			"name":     "Grilled Chicken Salad",
			"calories": 650,
		},
		"userRequest": "make it vegetarian",
		"userProfile": map[string]interface{}{
			"age":           28,
			"gender":        "male",
			"height":        178,
			"weight":        74.5,
			"activityLevel": "moderate",
		},
		"mealPlanData": map[string]interface{}{
			"goal": "weight-loss",
		},
	}

	resp, err := postJSON("/v1/mealplans/modify", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		ModifiedMeal map[string]interface{} `json:"modifiedMeal"`
		Metadata     struct {
			RequestID string `json:"requestId"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if result.ModifiedMeal == nil {
		return fmt.Errorf("no modifiedMeal in response")
	}
	if !strings.HasPrefix(result.Metadata.RequestID, "modify_") {
		return fmt.Errorf("unexpected requestId %q", result.Metadata.RequestID)
	}

	return nil
}

// Helper functions

func postJSON(path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", apiBase+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return client.Do(req)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
