package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/localizer/internal/language"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	regionalOnly := fs.Bool("regional", false, "List only regional languages")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	for _, code := range language.Codes() {
		if *regionalOnly && !language.IsRegional(code) {
			continue
		}
		fmt.Printf("%-4s %s\n", code, language.Name(code))
	}
	return 0
}
