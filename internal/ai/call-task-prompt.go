package ai

import (
	"fmt"
	"strings"
)

func GenerateCallTask(
	organization string,
	style string,
	questions []string,
	knowledgeBaseURL string,
) (string, error) {
	var list strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&list, "%d. %s\n", i+1, q)
	}

	prompt := `Introduce yourself as an assistant from %s.
Strictly follow this style for the conversation: %s

Ask the following questions one by one, waiting for an answer before moving on:
%s
If the person asks anything outside of these questions, refer to %s to answer it.`

	return fmt.Sprintf(prompt, organization, style, strings.TrimRight(list.String(), "\n"), knowledgeBaseURL), nil
}
