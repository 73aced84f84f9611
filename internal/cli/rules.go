package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/ui/pretty"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
	_ "github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules" // Register built-in rules
)

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Fixable     bool     `json:"fixable"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, names, descriptions,
and whether they support auto-fixing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			if format == formatJSON {
				return outputRulesJSON(rules)
			}

			color, _ := cmd.Flags().GetString("color")
			styles := pretty.NewStyles(pretty.IsColorEnabled(color, os.Stdout))

			for _, rule := range rules {
				fixable := " "
				if rule.CanFix() {
					fixable = styles.Fixable.Render("fixable")
				}
				fmt.Printf("%s  %-30s %-8s %s\n",
					styles.Bold.Render(rule.ID()),
					styles.RuleID.Render(rule.Name()),
					fixable,
					rule.Description())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func outputRulesJSON(rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Tags:        rule.Tags(),
			Fixable:     rule.CanFix(),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return nil
}
