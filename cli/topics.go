package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"system_design_demos/artifact"
	"system_design_demos/ledger"
)

var topicsFormat string

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List covered topics",
	Long: `Prints the covered-topics ledger oldest first, with the demo file name
each topic maps to. Formats: text, json, yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closer, err := ledger.Open(cfg.Ledger.Backend, cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer closer.Close()

		l, err := store.Load()
		if err != nil {
			return fmt.Errorf("loading ledger: %w", err)
		}
		return printTopics(cmd.OutOrStdout(), l, topicsFormat)
	},
}

func printTopics(w io.Writer, l *ledger.Ledger, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting topics as JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		data, err := yaml.Marshal(l)
		if err != nil {
			return fmt.Errorf("formatting topics as YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
	case "", "text":
		if l.Len() == 0 {
			fmt.Fprintln(w, "No topics covered yet.")
			return nil
		}
		fmt.Fprintf(w, "Covered topics (%d)\n\n", l.Len())
		for i, topic := range l.Covered {
			fmt.Fprintf(w, "  %3d. %-50s %s\n", i+1, topic, artifact.Sanitize(topic)+artifact.Ext)
		}
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
	return nil
}

func init() {
	topicsCmd.Flags().StringVar(&topicsFormat, "format", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(topicsCmd)
}
