package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignite/pagecraft/internal/copywriter"
	"github.com/ignite/pagecraft/internal/domain"
)

func newSEOCmd(a *app) *cobra.Command {
	var (
		name        string
		features    string
		tone        string
		description string
	)
	cmd := &cobra.Command{
		Use:   "seo",
		Short: "Derive meta title, meta description and keywords",
		Long: `Derives SEO metadata for a product. The description is read from
--description ("-" reads stdin); without one, a single variant is
generated first and used as the description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			feats := domain.ParseFeatures(features)
			t := domain.Tone(tone)

			text := description
			if text == "-" {
				var err error
				if text, err = readSource(cmd, "-"); err != nil {
					return err
				}
			}
			if strings.TrimSpace(text) == "" {
				res, err := a.generationService().Generate(cmd.Context(), domain.GenerationRequest{
					SubjectName: name, Features: feats, Tone: t, VariantCount: 1,
				})
				if err != nil {
					return fmt.Errorf("generate description: %w", err)
				}
				text = res.Variants[0].Content
			}
			return printJSON(cmd.OutOrStdout(), copywriter.DeriveSEO(name, feats, t, strings.TrimSpace(text)))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&features, "features", "", "comma-separated features")
	cmd.Flags().StringVar(&tone, "tone", string(domain.ToneProfessional), "Professional, Casual or Luxury")
	cmd.Flags().StringVar(&description, "description", "", `description text, or "-" for stdin`)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
