package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/idilsaglam/shoplist/internal/cli"
	"github.com/idilsaglam/shoplist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	lang := flag.String("lang", "", "ui language (en|es|cs|de)")
	store := flag.String("store", "", "path to the SQLite database")
	theme := flag.String("theme", "", "output theme (classic|neon|mono)")
	noColor := flag.Bool("no-color", false, "disable colored output")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *theme != "" {
		ui.SetTheme(*theme)
	}
	ui.SetColorForcing(false, *noColor)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Lang:  *lang,
		Store: *store,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
