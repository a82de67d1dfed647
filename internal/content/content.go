// Package content holds the portfolio's static display data.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrDuplicateKey is returned when two entries of one list share a display key.
var ErrDuplicateKey = errors.New("duplicate display key")

// Project is one card on the projects view.
type Project struct {
	Title       string
	Description string
	Highlights  []string
	Tech        []string
}

// Skill is one entry of the language skills list.
type Skill struct {
	Name  string
	Level string
}

// ExternalLink opens in a new browsing context.
type ExternalLink struct {
	Label string
	URL   string
}

// Avatar is the home view's profile image. Once the image is known to fail
// the placeholder is shown instead; there is no retry.
type Avatar struct {
	Src         string
	Alt         string
	Placeholder string

	failed bool
}

// Fail records that the image could not be loaded.
func (a *Avatar) Fail() { a.failed = true }

// ImageLoadOK reports whether the image should still be attempted.
func (a Avatar) ImageLoadOK() bool { return !a.failed }

// Validate checks that display keys are unique within each list.
func Validate() error {
	titles := make([]string, 0, len(Projects))
	for _, p := range Projects {
		titles = append(titles, p.Title)
		if err := unique("highlights of "+p.Title, p.Highlights); err != nil {
			return err
		}
		if err := unique("tech of "+p.Title, p.Tech); err != nil {
			return err
		}
	}
	if err := unique("projects", titles); err != nil {
		return err
	}
	if err := unique("experiences", Experiences); err != nil {
		return err
	}
	names := make([]string, 0, len(LanguageSkills))
	for _, s := range LanguageSkills {
		names = append(names, s.Name)
	}
	if err := unique("language skills", names); err != nil {
		return err
	}
	return unique("things I like", ThingsILike)
}

func unique(list string, keys []string) error {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%s: %q: %w", list, k, ErrDuplicateKey)
		}
		seen[k] = struct{}{}
	}
	return nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// RenderMarkdown converts trusted, compiled-in Markdown to HTML.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
