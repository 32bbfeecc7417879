package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sardine/pkg/lot"
	"github.com/matzehuels/sardine/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sardine.

Bash:
  $ source <(sardine completion bash)

Zsh:
  $ sardine completion zsh > "${fpath[1]}/_sardine"

Fish:
  $ sardine completion fish > ~/.config/fish/completions/sardine.fish

PowerShell:
  PS> sardine completion powershell | Out-String | Invoke-Expression

Besides commands and flags, the scripts complete output formats, perimeter
modes and row alignments, and offer only JSON files for site and lot
arguments.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeJSONFiles restricts positional completion to .json files.
func completeJSONFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the comma-separated --format list, offering
// the formats not yet named.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	used := map[string]bool{}
	for _, f := range strings.Split(prefix, ",") {
		used[f] = true
	}
	var out []string
	for _, f := range pipeline.ValidFormats {
		if !used[f] && strings.HasPrefix(f, last) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completePerimeterModes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		lot.PerimeterNone.String(),
		lot.PerimeterOneSide.String(),
		lot.PerimeterDouble.String(),
	}, cobra.ShellCompDirectiveNoFileComp
}

func completeAlignments(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{lot.AlignEdge.String(), lot.AlignAxis.String()}, cobra.ShellCompDirectiveNoFileComp
}
