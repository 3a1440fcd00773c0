// Package docs embeds the bankreport documentation topics.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// All expands to every topic.
const All = "*"

// GetTopic returns the content of a documentation topic.
func GetTopic(topic string) (string, error) {
	if topic == All {
		return GetTopics(All)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated together.
func GetTopics(topics ...string) (string, error) {
	var names []string
	for _, topic := range topics {
		if topic != All {
			names = append(names, topic)
			continue
		}
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		names = append(names, all...)
	}

	var b strings.Builder
	for _, topic := range names {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns a list of all available documentation topics, readme excluded.
func GetAllTopics() ([]string, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if base == "readme" {
			continue
		}
		topics = append(topics, base)
	}
	slices.Sort(topics)
	return topics, nil
}
