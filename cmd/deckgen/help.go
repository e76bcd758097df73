package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render outline files to PowerPoint decks")
	fmt.Fprintln(w, "  themes     List available themes")
	fmt.Fprintln(w, "  inspect    Show the layouts and placeholders of a theme")
	fmt.Fprintln(w, "  serve      Run the HTTP API")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'deckgen help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

func printDeckUsage(w io.Writer) {
	fmt.Fprintln(w, "Deck:")
	fmt.Fprintln(w, "  -t, --theme <name>        Theme name (default: catalogue default)")
	fmt.Fprintln(w, "      --font <name>         Typeface override")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: generated_ppts)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --no-images           Do not fetch images")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen render [outline...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render outline files (.json, .yaml, .yml, .md) to .pptx decks.")
	fmt.Fprintln(w, "Output files get unique names in the output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --topic <s>           Render the built-in outline for a topic")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (0 = auto)")
	fmt.Fprintln(w)
	printDeckUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve POST /api/generate, GET /ws/generate, GET /download/:name,")
	fmt.Fprintln(w, "GET /api/themes, GET /api/renders and GET /healthz.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default :8000)")
	fmt.Fprintln(w, "      --history <path>      SQLite file for render history")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent renders (0 = auto)")
	fmt.Fprintln(w)
	printDeckUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	printCommonUsage(w)
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the theme catalogue.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	printCommonUsage(w)
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen inspect <theme> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the template layouts of a theme with the idx of each placeholder,")
	fmt.Fprintln(w, "and the layout and regions used for each slide kind.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: deckgen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: deckgen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
