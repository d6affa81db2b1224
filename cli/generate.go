package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"system_design_demos/artifact"
	"system_design_demos/config"
	"system_design_demos/generator"
	"system_design_demos/ledger"
	"system_design_demos/pipeline"
)

var generateTopic string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Discover a new topic and generate its demo page",
	Long: `Loads the covered-topics ledger, asks the LLM for a topic that has not
been covered, generates an interactive HTML page for it, writes the page to
the demos directory and records the topic.

Provider failures do not fail the run: a dated fallback topic or a minimal
fallback page is used instead. Ledger and filesystem errors do fail it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateTopic != "" && strings.TrimSpace(generateTopic) == "" {
			return errors.New("--topic must not be blank")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		logger := config.NewLogger(cfg.Log, os.Stderr)

		llm, err := generator.NewLLMClient(&generator.LLMSettings{
			Provider:   cfg.LLM.Provider,
			Model:      cfg.LLM.Model,
			APIKey:     cfg.LLM.APIKey,
			BaseURL:    cfg.LLM.BaseURL,
			Timeout:    cfg.LLM.Timeout,
			MaxRetries: cfg.LLM.MaxRetries,
		})
		if err != nil {
			return err
		}
		agent, err := generator.NewAgent(llm, generator.Options{
			Discovery: generator.DiscoveryOptions{
				MaxAttempts:  cfg.Discovery.MaxAttempts,
				RecentWindow: cfg.Discovery.RecentWindow,
				Temperature:  cfg.Discovery.Temperature,
				MaxTokens:    cfg.Discovery.MaxTokens,
			},
			Content: generator.ContentOptions{
				Temperature: cfg.Content.Temperature,
				MaxTokens:   cfg.Content.MaxTokens,
			},
			CallTimeout: cfg.LLM.Timeout,
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		store, closer, err := ledger.Open(cfg.Ledger.Backend, cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer closer.Close()

		out := cmd.OutOrStdout()
		p, err := pipeline.New(store, agent, artifact.NewWriter(cfg.DemosDir),
			pipeline.WithReporter(newConsoleReporter(out)),
			pipeline.WithLogger(logger))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintln(out, titleStyle.Render("Daily System Design Demo Generator"))
		res, err := p.Run(ctx, generateTopic)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, summary(res))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateTopic, "topic", "", "use this topic instead of discovering one")
	rootCmd.AddCommand(generateCmd)
}
