package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/localizer/internal/cli"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	asJSON := fs.Bool("json", false, "Print the full result as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "detect requires exactly one text argument")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  localizer detect \"<text>\" [--json] [--env .env]")
		return 2
	}

	svc, logger, code := buildService(envLoader)
	if svc == nil {
		return code
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := svc.DetectLanguage(ctx, fs.Arg(0))
	if err != nil {
		logger.Error().Err(err).Msg("detect command failed")
		fmt.Fprintf(os.Stderr, "Detect failed: %v\n", err)
		return 1
	}

	if *asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Encode result failed: %v\n", err)
			return 1
		}
		fmt.Println(string(encoded))
		return 0
	}

	fmt.Printf("language=%s name=%q confidence=%.2f method=%s\n",
		result.Language, result.Name, result.Confidence, result.Method)
	return 0
}
