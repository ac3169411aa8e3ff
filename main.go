package main

import (
	"os"

	"horse.fit/localizer/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
