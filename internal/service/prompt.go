package service

import (
	"fmt"
	"strings"

	"financial-doc-classifier/internal/domain"
)

const textPayloadHeader = "\n\nDocument text to classify:\n\n"

// BuildClassificationPrompt renders the fixed instruction sent with every
// request. The category list comes from domain.Categories.
func BuildClassificationPrompt() string {
	var b strings.Builder

	b.WriteString("You are an expert financial document classifier. Your task is to analyze the provided document and classify it into one of these categories:\n\n")
	b.WriteString("**Categories and Definitions:**\n\n")
	for i, c := range domain.Categories {
		fmt.Fprintf(&b, "%d. **%s** - %s\n\n", i+1, c.Name, c.Description)
	}

	b.WriteString(`**Instructions:**
- Analyze the document content carefully
- Look for key indicators like document titles, formatting, specific terminology, and data patterns
- Consider the purpose and context of the document
- Provide your classification with a confidence score between 0.0 and 1.0
- Give a brief explanation of why you classified it this way
- Be conservative with confidence scores - only use high confidence (>0.9) when you're very certain

**Response Format:**
Respond with a single JSON object and nothing else, in this exact format:
{
    "category": "one of the categories exactly as listed above",
    "confidence": <number between 0.0 and 1.0>,
    "explanation": "brief explanation of classification reasoning"
}
`)
	return b.String()
}

// buildTextPrompt appends the document text to the instruction.
func buildTextPrompt(instruction, text string) string {
	return instruction + textPayloadHeader + text
}

// StripCodeFences removes a Markdown code fence wrapped around a reply.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
