package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps the manual in sync with itself: every topic listed in
// readme.md must load, and every topic file must be listed in readme.md.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			listed = append(listed, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	if len(listed) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, topic := range listed {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		found := false
		for _, l := range listed {
			if l == topic {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

// TestMarkdownWellFormed parses every topic file and checks its basic
// shape: a top-level heading, and no empty fenced code blocks.
func TestMarkdownWellFormed(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			root := goldmark.DefaultParser().Parse(text.NewReader(content))

			hasTitle := false
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				switch v := n.(type) {
				case *ast.Heading:
					if v.Level == 1 {
						hasTitle = true
					}
				case *ast.FencedCodeBlock:
					if v.Lines().Len() == 0 {
						t.Errorf("empty fenced code block in %s", file)
					}
				}
				return ast.WalkContinue, nil
			})
			if !hasTitle {
				t.Errorf("%s has no top-level heading", file)
			}
		})
	}
}

func TestGetTopicsStar(t *testing.T) {
	doc, err := GetTopics("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Policies", "# Performance", "# Benchmark"} {
		if !strings.Contains(doc, want) {
			t.Errorf("expanded topics miss %q", want)
		}
	}
}

func TestGetTopicUnknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
}
