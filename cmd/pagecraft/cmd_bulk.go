package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignite/pagecraft/internal/domain"
)

// bulkSummary is the JSON printed by the bulk command.
type bulkSummary struct {
	Results   []domain.BulkItemResult `json:"results"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
}

func newBulkCmd(a *app) *cobra.Command {
	var (
		file     string
		features string
		tone     string
		count    int
	)
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Generate descriptions for every product in a CSV file",
		Long: `Reads a CSV with a header row. The "name" column is required; an
optional "features" column overrides --features for that row. Use
--file - to read the CSV from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			reqs, err := readBulkCSV(in, domain.ParseFeatures(features), domain.Tone(tone), count)
			if err != nil {
				return err
			}

			out := bulkSummary{Results: a.generationService().BulkGenerate(cmd.Context(), reqs)}
			for _, r := range out.Results {
				if r.Status == domain.BulkSuccess {
					out.Succeeded++
				} else {
					out.Failed++
				}
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if out.Failed > 0 {
				return fmt.Errorf("%d of %d items failed", out.Failed, len(out.Results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", `CSV file, or "-" for stdin`)
	cmd.Flags().StringVar(&features, "features", "", "comma-separated features shared by every row")
	cmd.Flags().StringVar(&tone, "tone", string(domain.ToneProfessional), "Professional, Casual or Luxury")
	cmd.Flags().IntVar(&count, "count", 0, "variants per product (0 = configured default)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readBulkCSV turns CSV rows into generation requests. Blank names are
// kept so they surface as per-item errors rather than vanishing.
func readBulkCSV(r io.Reader, shared domain.Features, tone domain.Tone, count int) ([]domain.GenerationRequest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	nameCol, featCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name":
			nameCol = i
		case "features":
			featCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("csv header has no %q column", "name")
	}

	var reqs []domain.GenerationRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		req := domain.GenerationRequest{Features: shared, Tone: tone, VariantCount: count}
		if nameCol < len(rec) {
			req.SubjectName = strings.TrimSpace(rec[nameCol])
		}
		if featCol >= 0 && featCol < len(rec) {
			if f := domain.ParseFeatures(rec[featCol]); len(f) > 0 {
				req.Features = f
			}
		}
		reqs = append(reqs, req)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("csv has no product rows")
	}
	return reqs, nil
}
