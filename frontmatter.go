package book2pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-book2pdf/internal/yamlutil"
)

// versionedTitlePattern matches an indexed title of the shape
// "NAME (VERSION)", e.g. "The Swift Programming Language (6.2)".
var versionedTitlePattern = regexp.MustCompile(`^(.+) \((.+)\)$`)

// FrontMatter is the metadata block prepended to the combined document.
// Beyond title and date, the fields are static typesetting directives for
// the renderer; they are emitted verbatim every run.
type FrontMatter struct {
	Title                      string   `yaml:"title"`
	Date                       string   `yaml:"date"`
	TOC                        bool     `yaml:"toc"`
	TOCDepth                   int      `yaml:"toc-depth"`
	TOCOwnPage                 bool     `yaml:"toc-own-page"`
	TitlePage                  bool     `yaml:"titlepage"`
	TitlePageRuleColor         string   `yaml:"titlepage-rule-color"`
	StripComments              bool     `yaml:"strip-comments"`
	SansFont                   string   `yaml:"sansfont"`
	MainFont                   string   `yaml:"mainfont"`
	MainFontFallback           []string `yaml:"mainfontfallback"`
	MonoFont                   string   `yaml:"monofont"`
	MonoFontOptions            []string `yaml:"monofontoptions"`
	MonoFontFallback           []string `yaml:"monofontfallback"`
	FontSize                   string   `yaml:"fontsize"`
	ListingsDisableLineNumbers bool     `yaml:"listings-disable-line-numbers"`
	ListingsNoPageBreak        bool     `yaml:"listings-no-page-break"`
	PaperSize                  string   `yaml:"papersize"`
}

// NewFrontMatter returns the production typesetting configuration with
// the given title and date filled in.
func NewFrontMatter(title, date string) FrontMatter {
	return FrontMatter{
		Title:              title,
		Date:               date,
		TOC:                true,
		TOCDepth:           4,
		TOCOwnPage:         true,
		TitlePage:          true,
		TitlePageRuleColor: "de5d43",
		StripComments:      true,
		SansFont:           "SF Pro Text Heavy",
		MainFont:           "SF Pro Text",
		MainFontFallback: []string{
			"Apple Color Emoji:mode=harf",
			"Helvetica Neue:mode=harf",
		},
		MonoFont:        "Menlo",
		MonoFontOptions: []string{"Scale=0.9"},
		MonoFontFallback: []string{
			"Sathu:mode=harf",
			"Al Nile:mode=harf",
			"Apple Color Emoji:mode=harf",
			"Apple SD Gothic Neo:mode=harf",
			"Hiragino Sans:mode=harf",
		},
		FontSize:                   "10pt",
		ListingsDisableLineNumbers: true,
		ListingsNoPageBreak:        false,
		PaperSize:                  "letter",
	}
}

// Lines renders the front matter as a fenced YAML block, one element per
// output line.
func (fm FrontMatter) Lines() ([]string, error) {
	body, err := yamlutil.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("rendering front matter: %w", err)
	}

	lines := []string{"---"}
	lines = append(lines, splitLines(string(body))...)
	lines = append(lines, "---")
	return lines, nil
}

// applyVersionSuffix splices suffix into the parenthesized version
// fragment of a "NAME (VERSION)" title. Titles of any other shape are
// returned unchanged; the suffix is silently not applied.
func applyVersionSuffix(title, suffix string) string {
	if suffix == "" {
		return title
	}
	match := versionedTitlePattern.FindStringSubmatch(title)
	if match == nil {
		return title
	}
	return fmt.Sprintf("%s (%s %s)", match[1], match[2], strings.TrimSpace(suffix))
}
