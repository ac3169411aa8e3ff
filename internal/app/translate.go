package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/localizer/internal/cli"
	"horse.fit/localizer/internal/config"
	"horse.fit/localizer/internal/logging"
	"horse.fit/localizer/internal/service"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	from := fs.String("from", "auto", "Source language code, or auto")
	to := fs.String("to", "", "Comma-separated target language codes")
	domain := fs.String("domain", "", "Optional content domain hint")
	asJSON := fs.Bool("json", false, "Print the full result as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "translate requires exactly one text argument")
		printTranslateUsage()
		return 2
	}

	targets := splitTargets(*to)
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "--to is required, for example: --to hi,ta")
		return 2
	}

	svc, logger, code := buildService(envLoader)
	if svc == nil {
		return code
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := svc.Translate(ctx, service.Request{
		Text:        fs.Arg(0),
		SourceLang:  *from,
		TargetLangs: targets,
		Domain:      *domain,
	})
	if err != nil {
		logger.Error().Err(err).Msg("translate command failed")
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	if *asJSON {
		encoded, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Encode result failed: %v\n", err)
			return 1
		}
		fmt.Println(string(encoded))
		return 0
	}

	fmt.Printf("source=%s\n", resp.SourceLanguage)
	failures := 0
	for _, target := range targets {
		result, ok := resp.Results[target]
		if !ok {
			continue
		}
		if result.Error != "" {
			failures++
			fmt.Printf("%s: ERROR %s\n", target, result.Error)
			continue
		}
		fmt.Printf("%s (%s, confidence %.2f): %s\n",
			target, result.ModelUsed, result.Confidence, result.TranslatedText)
	}
	if failures == len(targets) {
		return 1
	}
	return 0
}

// buildService loads env, config, and logging, and assembles the
// translation service for one-shot commands.
func buildService(envLoader *cli.EnvLoader) (*service.Service, zerolog.Logger, int) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, zerolog.Logger{}, 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return nil, zerolog.Logger{}, 1
	}

	// One-shot commands never persist history.
	return service.New(cfg, nil, logger), logger, 0
}

func splitTargets(raw string) []string {
	parts := strings.Split(raw, ",")
	targets := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}
	return targets
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  localizer translate \"<text>\" --to <lang,lang> [--from auto] [--json] [--env .env] [--timeout 5m]")
}
