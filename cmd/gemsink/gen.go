package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secs-tools/gemsink/internal/gemsink/gen"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate synthetic SECS/GEM payloads for testing",
	RunE:  runGen,
}

var flagGenSpec string

func init() {
	genCmd.Flags().StringVar(&flagGenSpec, "spec", "", "generator spec file (required)")
	genCmd.MarkFlagRequired("spec")
}

func runGen(cmd *cobra.Command, args []string) error {
	gcfg, err := gen.ReadConfig(flagGenSpec)
	if err != nil {
		return fmt.Errorf("read generator spec: %w", err)
	}
	n, err := gen.GenerateFile(gcfg)
	if err != nil {
		return err
	}
	if gcfg.Output != "" {
		fmt.Printf("Wrote %d payload(s) to %s.\n", n, gcfg.Output)
	}
	return nil
}
