package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tuivocab/internal/model"
)

func TestDefaultWordsCoverEveryLevel(t *testing.T) {
	words, err := DefaultWords()
	if err != nil {
		t.Fatalf("DefaultWords failed: %v", err)
	}
	for _, level := range model.Levels {
		n := len(Apply(words, ByLevel(level)))
		if n < 4 {
			t.Fatalf("expected at least 4 %s words for multiple choice, got %d", level, n)
		}
	}
}

func TestParseWordsOrderAndTags(t *testing.T) {
	data := `
intermediate:
  weather:
    - {english: storm, vietnamese: cơn bão}
beginner:
  colors:
    - {english: red, vietnamese: màu đỏ}
  animals:
    - {english: " cat ", vietnamese: con mèo}
`
	words, err := ParseWords([]byte(data))
	if err != nil {
		t.Fatalf("ParseWords failed: %v", err)
	}
	expected := []string{"cat", "red", "storm"}
	if len(words) != len(expected) {
		t.Fatalf("expected %d words, got %d", len(expected), len(words))
	}
	for i, english := range expected {
		if words[i].English != english {
			t.Fatalf("expected %q at index %d, got %q", english, i, words[i].English)
		}
	}
	if words[0].Level != model.LevelBeginner || words[0].Topic != "animals" {
		t.Fatalf("unexpected tags: %+v", words[0])
	}
	if words[2].Level != model.LevelIntermediate || words[2].Topic != "weather" {
		t.Fatalf("unexpected tags: %+v", words[2])
	}
}

func TestParseWordsRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown level": "expert:\n  x:\n    - {english: a}\n",
		"empty english": "beginner:\n  x:\n    - {english: \"\", vietnamese: b}\n",
		"duplicate":     "beginner:\n  x:\n    - {english: Cat}\n    - {english: cat}\n",
		"empty":         "beginner: {}\n",
	}
	for name, data := range tests {
		if _, err := ParseWords([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseWordsAllowsSameWordInOtherTopic(t *testing.T) {
	data := "beginner:\n  a:\n    - {english: orange}\n  b:\n    - {english: orange}\n"
	words, err := ParseWords([]byte(data))
	if err != nil {
		t.Fatalf("ParseWords failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
}

func TestLoadWordsReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("expert: {}\n"), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	_, err := LoadWords(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error mentioning path, got %v", err)
	}
}

func TestApplyFilters(t *testing.T) {
	words := []model.WordRecord{
		{English: "cat", Level: model.LevelBeginner, Topic: "animals"},
		{English: "red", Level: model.LevelBeginner, Topic: "colors"},
		{English: "storm", Level: model.LevelIntermediate, Topic: "weather"},
	}
	got := Apply(words, ByLevel(model.LevelBeginner), ByTopic("colors"))
	if len(got) != 1 || got[0].English != "red" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if len(Apply(words, ByLevel(""), ByTopic(""))) != 3 {
		t.Fatalf("expected empty filters to keep everything")
	}
}
