package llm

import (
	_ "embed"
	"strings"
)

const textPlaceholder = "{text}"

//go:embed prompts/analyze_v1.txt
var analyzePromptV1 string

// PromptVersion names the template BuildAnalysisPrompt renders.
const PromptVersion = "analyze_v1"

// BuildAnalysisPrompt embeds the résumé text verbatim in the analysis template.
func BuildAnalysisPrompt(text string) string {
	return strings.Replace(analyzePromptV1, textPlaceholder, text, 1)
}
