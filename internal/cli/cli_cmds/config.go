package cli_cmds

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/firedragon-ledger/internal/cli"
)

// NewConfig creates the config command for inspecting the loaded configuration
func NewConfig(params *cli.CmdParams) *cobra.Command {
	var format string

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the ledger configuration",
	}
	configCmd.PersistentFlags().StringVarP(&format, "format", "o", "text", "Output format: text or json")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := params.Config.Settings()
			if err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), format, settings)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting, e.g. search.items_per_page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := params.Config.Settings()
			if err != nil {
				return err
			}
			key := strings.ToLower(args[0])
			value, ok := settings[key]
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			return writeSettings(cmd.OutOrStdout(), format, map[string]interface{}{key: value})
		},
	}

	configCmd.AddCommand(listCmd, getCmd)
	return configCmd
}

func writeSettings(w io.Writer, format string, settings map[string]interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	case "text":
		keys := make([]string, 0, len(settings))
		for key := range settings {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "%s = %v\n", key, settings[key])
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
