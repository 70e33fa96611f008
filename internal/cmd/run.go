package cmd

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/namelens/gh-whenreset/internal/config"
	apperrors "github.com/namelens/gh-whenreset/internal/errors"
	"github.com/namelens/gh-whenreset/internal/observability"
	"github.com/namelens/gh-whenreset/internal/output"
	"github.com/namelens/gh-whenreset/internal/ratelimit"
	"github.com/namelens/gh-whenreset/internal/source"
	"github.com/namelens/gh-whenreset/internal/timefmt"
)

func runWhenReset(ctx context.Context, cfg *config.Config, env Environment) error {
	src, err := source.Resolve(cfg.Source, source.Options{
		Stdin:      env.Stdin,
		IsTerminal: env.IsTerminal,
		GHBinary:   cfg.GH.Path,
		Runner:     env.Runner,
		APIURL:     cfg.API.URL,
		APIToken:   cfg.API.Token,
	})
	if err != nil {
		return err
	}
	observability.Debug("Loading rate limit payload", zap.String("source", src.Describe()))

	payload, err := src.Load(ctx)
	if err != nil {
		return err
	}

	resources, err := payload.Resources()
	if err != nil {
		return err
	}

	loc, err := timefmt.ResolveTimezone(cfg.Timezone)
	if err != nil {
		return err
	}

	seq := ratelimit.ConsideredBuckets(resources, cfg.All)
	var considered []ratelimit.Bucket
	if cfg.OutputFormat == output.FormatTable {
		considered = slices.Collect(seq)
		seq = slices.Values(considered)
	}

	selected, ok := ratelimit.Latest(seq)
	if !ok {
		return apperrors.NewNotFoundError("No rate limit buckets matched")
	}
	observability.Debug("Selected bucket",
		zap.String("bucket", selected.Name),
		zap.Int64("reset", selected.Reset),
		zap.Bool("include_all", cfg.All),
		zap.String("timezone", loc.String()),
	)

	report := output.NewReport(selected, considered, env.now(), loc)
	rendered, err := output.NewFormatter(cfg.OutputFormat).Format(report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.Stdout, rendered)
	return err
}
