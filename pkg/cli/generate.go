package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/oakmoss-dev/ghrecap/pkg/cli/config"
	llmSvc "github.com/oakmoss-dev/ghrecap/pkg/service/llm"
	"github.com/oakmoss-dev/ghrecap/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdGenerate() *cli.Command {
	var (
		githubCfg config.GitHub
		outputCfg config.Output
		geminiCfg config.Gemini
		slackCfg  config.Slack
		weights   string
	)

	flags := joinFlags(
		githubCfg.Flags(),
		outputCfg.Flags(),
		geminiCfg.Flags(),
		slackCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "weights",
				Usage:       "YAML file assigning impact weights to labels",
				Category:    "Output",
				Sources:     cli.EnvVars("GHRECAP_WEIGHTS"),
				Destination: &weights,
			},
		},
	)

	return &cli.Command{
		Name:  "generate",
		Usage: "Generate and publish the weekly recap",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := githubCfg.Validate(); err != nil {
				return err
			}
			if err := outputCfg.Validate(); err != nil {
				return err
			}

			logger.Info("starting recap generation",
				slog.Any("github", githubCfg),
				slog.Any("output", outputCfg),
				slog.Any("gemini", geminiCfg),
				slog.Any("slack", slackCfg),
			)

			repo, err := githubCfg.Repository()
			if err != nil {
				return err
			}

			weightsCfg, err := config.LoadWeightsFromFile(weights)
			if err != nil {
				return err
			}

			source := githubCfg.ConfigureSource(ctx)

			opts := []usecase.Option{
				usecase.WithCategory(githubCfg.Category),
				usecase.WithOutputDir(outputCfg.Dir),
				usecase.WithWindowDays(int(outputCfg.WindowDays)),
				usecase.WithWeights(weightsCfg),
				usecase.WithDryRun(outputCfg.DryRun),
			}

			if !outputCfg.DryRun {
				publisher, err := githubCfg.ConfigurePublisher(ctx)
				if err != nil {
					return err
				}
				opts = append(opts, usecase.WithPublisher(publisher))

				if notifier := slackCfg.ConfigureOptional(logger); notifier != nil {
					opts = append(opts, usecase.WithNotifier(notifier))
				}
			}

			if llmClient := geminiCfg.ConfigureOptional(ctx, logger); llmClient != nil {
				opts = append(opts, usecase.WithLLM(llmSvc.New(llmClient)))
			}

			uc := usecase.NewRecap(source, repo, opts...)
			result, err := uc.Generate(ctx)
			if err != nil {
				return err
			}

			logger.Info("recap complete",
				"file", result.FilePath,
				"closures", result.Recap.TotalClosures(),
			)
			if result.Discussion != nil {
				logger.Info("discussion published", "url", result.Discussion.URL)
			}
			return nil
		},
	}
}
