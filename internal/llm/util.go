package llm

import (
	"regexp"
	"strings"
)

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// CleanJSONBlock removes a markdown code fence wrapping a JSON reply. Models
// wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if m := codeBlockRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return text
}
