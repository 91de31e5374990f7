package calls

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBlandProviderPlaceCall(t *testing.T) {
	var got map[string]interface{}
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/calls" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","call_id":"bland-1"}`))
	}))
	defer server.Close()

	provider := NewBlandProvider(server.URL+"/", "org_key")
	callID, err := provider.PlaceCall(context.Background(), Call{
		PhoneNumber:               "+15550100",
		Task:                      "ask things",
		KnowledgeBase:             "https://kb.example.test",
		Webhook:                   "https://hooks.example.test/webhook",
		Record:                    true,
		ReduceLatency:             true,
		AnsweringMachineDetection: true,
	})
	if err != nil {
		t.Fatalf("PlaceCall returned error: %v", err)
	}

	if callID != "bland-1" {
		t.Errorf("unexpected call id: got %v want %v", callID, "bland-1")
	}
	if auth != "org_key" {
		t.Errorf("unexpected authorization header: got %v want %v", auth, "org_key")
	}

	expected := map[string]interface{}{
		"phone_number":   "+15550100",
		"task":           "ask things",
		"knowledge_base": "https://kb.example.test",
		"webhook":        "https://hooks.example.test/webhook",
		"record":         true,
		"reduce_latency": true,
		"amd":            true,
	}
	for k, v := range expected {
		if got[k] != v {
			t.Errorf("payload field %s: got %v want %v", k, got[k], v)
		}
	}
}

func TestBlandProviderUnexpectedBody(t *testing.T) {
	bodies := []struct {
		status int
		body   string
	}{
		{status: http.StatusOK, body: `{"status":"success"}`},
		{status: http.StatusBadRequest, body: `{"errors":["invalid phone number"]}`},
		{status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
	}

	for _, b := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(b.status)
			w.Write([]byte(b.body))
		}))

		callID, err := NewBlandProvider(server.URL, "k").PlaceCall(context.Background(), Call{})
		server.Close()

		if err != nil {
			t.Errorf("%s: unexpected error %v", b.body, err)
		}
		if callID != "" {
			t.Errorf("%s: expected empty call id, got %v", b.body, callID)
		}
	}
}

func TestBlandProviderTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if _, err := NewBlandProvider(url, "k").PlaceCall(context.Background(), Call{}); err == nil {
		t.Errorf("expected transport error")
	}
}
