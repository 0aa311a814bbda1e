package main

import (
	"github.com/spf13/cobra"

	"github.com/ignite/pagecraft/internal/domain"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		name     string
		features string
		tone     string
		count    int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate description variants for one product",
		Example: `  pagecraft generate --name "Wireless Mouse" \
    --features "ergonomic, silent click, 6-month battery" --tone Casual --count 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.generationService().Generate(cmd.Context(), domain.GenerationRequest{
				SubjectName:  name,
				Features:     domain.ParseFeatures(features),
				Tone:         domain.Tone(tone),
				VariantCount: count,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&features, "features", "", "comma-separated features")
	cmd.Flags().StringVar(&tone, "tone", string(domain.ToneProfessional), "Professional, Casual or Luxury")
	cmd.Flags().IntVar(&count, "count", 0, "number of variants (0 = configured default)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("features")
	return cmd
}
