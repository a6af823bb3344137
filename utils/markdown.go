// Package utils provides helper functions for the todoist command line tool,
// including HTML conversion and shared constants.
package utils

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

const (
	// maxDescriptionLength is the longest task description the API accepts.
	maxDescriptionLength = 16383
)

// HTMLToMarkdown converts an HTML fragment to markdown for use as a task
// description. The result is trimmed and cut to the description limit.
func HTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert html to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)

	// Cut on a rune boundary
	if runes := []rune(markdown); len(runes) > maxDescriptionLength {
		markdown = string(runes[:maxDescriptionLength])
	}
	return markdown, nil
}
