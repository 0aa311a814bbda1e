package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignite/pagecraft/internal/copywriter"
)

func newAnalyzeCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Score a description for readability, SEO and conversion",
		Long:  "Reads the description from file, or from stdin when the argument is \"-\" or omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			text, err := readSource(cmd, src)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("nothing to analyze")
			}
			return printJSON(cmd.OutOrStdout(), copywriter.Analyze(text))
		},
	}
}

// readSource reads a file, or stdin for "-".
func readSource(cmd *cobra.Command, src string) (string, error) {
	if src == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
