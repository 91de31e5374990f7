package ai

import "strings"

const PromptGeneratorDescription = "An agent that generates prompts for a caller agent to interact with customers"

// FinalPromptDirective replaces the user's "generate prompt" message.
const FinalPromptDirective = "Based on our discussion, please generate the comprehensive prompt for the caller agent."

func GetPromptGeneratorInstructions() []string {
	return []string{
		"Ask questions one by one, not as a paragraph",
		"Ask the user for specific details about the caller agent's purpose",
		"Inquire about the target audience or customer type",
		"Request information about the desired tone and style of communication",
		"Ask for any specific points or topics that must be covered",
		"Take suggestions from the user for improvements or modifications",
		"When the user indicates they are satisfied, generate a comprehensive prompt based on the gathered information",
		"Once you are asked to generate the prompt, generate only the prompt content. Do not include extra text or context like 'Are you satisfied?' or 'Here is your prompt.'",
	}
}

func GetPromptGeneratorSystemPrompt() string {
	var b strings.Builder
	b.WriteString(PromptGeneratorDescription)
	b.WriteString(".\n\nInstructions:\n")
	for _, instruction := range GetPromptGeneratorInstructions() {
		b.WriteString("- ")
		b.WriteString(instruction)
		b.WriteString("\n")
	}
	return b.String()
}
