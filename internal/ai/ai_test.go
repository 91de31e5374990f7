package ai

import (
	"strings"
	"testing"
)

func TestGenerateCallTask(t *testing.T) {
	task, err := GenerateCallTask("Acme", "friendly and brief", []string{"How are you?", "Any feedback?"}, "https://kb.example.test")
	if err != nil {
		t.Fatalf("GenerateCallTask returned error: %v", err)
	}

	for _, want := range []string{"Acme", "friendly and brief", "1. How are you?", "2. Any feedback?", "https://kb.example.test"} {
		if !strings.Contains(task, want) {
			t.Errorf("task does not contain %q:\n%s", want, task)
		}
	}
}

func TestGenerateCallTaskWithoutQuestions(t *testing.T) {
	task, err := GenerateCallTask("Acme", "style", nil, "")
	if err != nil {
		t.Fatalf("GenerateCallTask returned error: %v", err)
	}
	if strings.Contains(task, "1.") {
		t.Errorf("expected an empty question list:\n%s", task)
	}
}

func TestPromptGeneratorSystemPrompt(t *testing.T) {
	system := GetPromptGeneratorSystemPrompt()

	if !strings.HasPrefix(system, PromptGeneratorDescription) {
		t.Errorf("system prompt should start with the description")
	}
	for _, instruction := range GetPromptGeneratorInstructions() {
		if !strings.Contains(system, instruction) {
			t.Errorf("missing instruction %q", instruction)
		}
	}
}
