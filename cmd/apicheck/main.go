package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

var (
	baseURL = getEnv("APICHECK_BASE_URL", "http://localhost:3000/api")
	token   = os.Getenv("APICHECK_TOKEN")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, model calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(name, method, url string, body interface{}) []byte {
	color.Yellow("\n%s", name)
	resp, respBody, err := sendRequest(method, url, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(respBody)
	return respBody
}

func main() {
	color.Cyan("🚀 Starting Advisor API Smoke Test\n")
	if token == "" {
		color.Red("APICHECK_TOKEN is not set")
		os.Exit(1)
	}

	// 1. Ingest a deposit-flavored document
	step("[DOCUMENT] 1. Ingest", "POST", "/document/v1", map[string]interface{}{
		"filename": "smoke_test.pdf",
		"content":  "정기예금 상품으로 이자 지급 조건은 다음과 같습니다.",
	})

	// 2. Ingest the same filename again, expect duplicate outcome
	step("[DOCUMENT] 2. Ingest duplicate", "POST", "/document/v1", map[string]interface{}{
		"filename": "smoke_test.pdf",
		"content":  "정기예금 상품으로 이자 지급 조건은 다음과 같습니다.",
	})

	// 3. Browse by the resolved category
	step("[DOCUMENT] 3. List by category", "GET", "/document/v1/category/예금", nil)

	// 4. Semantic search
	step("[DOCUMENT] 4. Semantic search", "POST", "/document/v1/semantic-search", map[string]interface{}{
		"query": "예금 이자",
		"limit": 3,
	})

	// 5. Profile scoring
	step("[PROFILE] 5. Score", "POST", "/profile/v1/score", map[string]interface{}{
		"asset_size":       5000000,
		"monthly_salary":   1500000,
		"wants_credit":     false,
		"age":              28,
		"personality_code": "INTJ",
	})

	// 6. Chat round trip
	body := step("[CHAT] 6. Create session", "POST", "/chat/v1/session", map[string]interface{}{
		"title": "smoke test",
	})
	var sessionResp struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &sessionResp); err != nil || sessionResp.Data.Id == "" {
		color.Red("Could not read session id")
		os.Exit(1)
	}

	step("[CHAT] 7. Send filtered message", "POST", "/chat/v1/send", map[string]interface{}{
		"chat_session_id": sessionResp.Data.Id,
		"message":         "예금 상품 알려줘",
	})

	step("[CHAT] 8. Save snapshot", "POST", "/chat/v1/session/"+sessionResp.Data.Id+"/snapshot", nil)

	color.Cyan("\n✅ Smoke test finished")
}
