package style

import (
	"fmt"
	"strings"
	"time"

	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// BuildSummary is what the build command reports
type BuildSummary struct {
	ConfigSource string
	OutputDir    string
	Files        []string
	Emitted      int
	Manifest     *manifest.Manifest
	Archive      string
	Duration     time.Duration
}

// RenderBuild renders a build summary
func RenderBuild(s BuildSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", SuccessIndicator, TitleStyle.Render(
		fmt.Sprintf("Rendered %d files into %s", len(s.Files), s.OutputDir)))
	if s.ConfigSource != "" {
		b.WriteString(Indent(MutedStyle.Render("config: "+s.ConfigSource), 1) + "\n")
	}

	for _, f := range s.Files {
		b.WriteString(Indent(PathStyle.Render(f), 1) + "\n")
	}

	if s.Manifest != nil {
		b.WriteString("\n" + TitleStyle.Render("package.xml") + MutedStyle.Render(" (version "+s.Manifest.Version+")") + "\n")
		for _, t := range s.Manifest.Package.Types() {
			b.WriteString(Indent(fmt.Sprintf("%s %s", KindStyle.Render(t.Name), strings.Join(t.Members, ", ")), 1) + "\n")
		}
	}

	if s.Archive != "" {
		b.WriteString("\n" + fmt.Sprintf("%s static resource %s", ArchiveIndicator, PathStyle.Render(s.Archive)) + "\n")
	}

	b.WriteString(MutedStyle.Render(fmt.Sprintf("%d emissions in %s", s.Emitted, s.Duration.Round(time.Millisecond))))
	return b.String()
}

// PlanRow is one planned artifact
type PlanRow struct {
	Kind     string `yaml:"kind"`
	Template string `yaml:"template"`
	Filename string `yaml:"filename"`
}

// Plan lists what a build would write
type Plan struct {
	Artifacts []PlanRow `yaml:"artifacts"`
	Hooks     []string  `yaml:"hooks,omitempty"`
}

// RenderPlan renders the plan as a table, plain lines or YAML
func RenderPlan(p Plan, f Format) (string, error) {
	switch f {
	case FormatYAML:
		out, err := yaml.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("failed to encode plan: %w", err)
		}
		return string(out), nil

	case FormatTerminal:
		data := pterm.TableData{{"#", "Kind", "Template", "File"}}
		for i, r := range p.Artifacts {
			data = append(data, []string{fmt.Sprint(i + 1), r.Kind, r.Template, r.Filename})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", fmt.Errorf("failed to render plan table: %w", err)
		}
		for _, h := range p.Hooks {
			table += "\n" + ArchiveIndicator + " after emit: " + h
		}
		return table, nil

	default:
		var b strings.Builder
		for _, r := range p.Artifacts {
			fmt.Fprintf(&b, "%s\t%s\t%s\n", r.Kind, r.Template, r.Filename)
		}
		for _, h := range p.Hooks {
			fmt.Fprintf(&b, "after-emit\t%s\n", h)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
}

// KindInfo describes one template kind
type KindInfo struct {
	Name        string
	Description string
	Template    string
}

// KindsMarkdown lists the template kinds as a markdown document
func KindsMarkdown(kinds []KindInfo) string {
	var b strings.Builder
	b.WriteString("# Template kinds\n\n")
	b.WriteString("Set `template` in a `files` entry to one of these kinds.\n\n")
	for _, k := range kinds {
		fmt.Fprintf(&b, "## %s\n\n%s\n\nBuilt-in template: `%s`\n\n", k.Name, k.Description, k.Template)
	}
	return b.String()
}

// RenderError renders an error message with appropriate styling
func RenderError(err error) string {
	return fmt.Sprintf("%s %s", ErrorIndicator, ErrorStyle.Render("Error: ")+err.Error())
}
