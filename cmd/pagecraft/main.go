// Command pagecraft generates and scores product descriptions from the
// command line. Every command prints JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ignite/pagecraft/internal/config"
	"github.com/ignite/pagecraft/internal/copywriter"
	"github.com/ignite/pagecraft/internal/pkg/logger"
	"github.com/ignite/pagecraft/internal/service/generation"
)

// app carries what the subcommands share once flags are parsed.
type app struct {
	configPath string
	seed       int64
	verbose    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pagecraft",
		Short:         "Product description copywriting toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv(a.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			if a.seed == 0 {
				a.seed = cfg.Generation.Seed
			}
			if a.verbose {
				logger.SetLevel(logger.DEBUG)
			} else {
				logger.SetLevel(logger.WARN)
			}
			logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "config/config.yaml", "path to config file")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "random seed for phrase selection (0 = from config or clock)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newBulkCmd(a))
	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newSEOCmd(a))
	return root
}

// generationService builds a generator without simulated latency; the
// variant limits come from config.
func (a *app) generationService() *generation.Service {
	composer := copywriter.NewComposer(copywriter.NewTemplateEngine(), copywriter.NewRand(a.seed))
	return generation.NewService(composer, generation.NewStore(), generation.NewGuard(nil), generation.Options{
		DefaultVariants: a.cfg.Generation.DefaultVariants,
		MaxVariants:     a.cfg.Generation.MaxVariants,
	})
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
