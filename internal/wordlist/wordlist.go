// Package wordlist loads vocabulary corpora from YAML files.
package wordlist

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuivocab/internal/model"
)

//go:embed corpus.yaml
var defaultCorpus []byte

// rawCorpus mirrors the file layout: level -> topic -> words.
type rawCorpus map[string]map[string][]model.WordRecord

// DefaultWords returns the built-in vocabulary.
func DefaultWords() ([]model.WordRecord, error) {
	words, err := ParseWords(defaultCorpus)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in corpus: %w", err)
	}
	return words, nil
}

// LoadWords reads a YAML corpus from the provided file path.
func LoadWords(path string) ([]model.WordRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words, err := ParseWords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// ParseWords decodes a corpus and returns words ordered by level, topic, then file order.
func ParseWords(data []byte) ([]model.WordRecord, error) {
	var raw rawCorpus
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	for name := range raw {
		if _, ok := model.ParseLevel(name); !ok {
			return nil, fmt.Errorf("unknown level %q", name)
		}
	}

	var words []model.WordRecord
	for _, level := range model.Levels {
		topics := raw[string(level)]
		names := make([]string, 0, len(topics))
		for topic := range topics {
			names = append(names, topic)
		}
		sort.Strings(names)
		for _, topic := range names {
			seen := map[string]struct{}{}
			for i, w := range topics[topic] {
				w.English = strings.TrimSpace(w.English)
				w.Vietnamese = strings.TrimSpace(w.Vietnamese)
				if w.English == "" {
					return nil, fmt.Errorf("%s/%s: word %d has empty english", level, topic, i+1)
				}
				key := strings.ToLower(w.English)
				if _, dup := seen[key]; dup {
					return nil, fmt.Errorf("%s/%s: duplicate word %q", level, topic, w.English)
				}
				seen[key] = struct{}{}
				w.Level = level
				w.Topic = topic
				words = append(words, w)
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}
	return words, nil
}
