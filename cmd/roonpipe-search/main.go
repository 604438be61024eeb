package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/bluemancz/roonpipe-launcher/internal/config"
	"github.com/bluemancz/roonpipe-launcher/internal/launcher"
	"github.com/bluemancz/roonpipe-launcher/internal/model"
	"github.com/bluemancz/roonpipe-launcher/internal/roonpipe"
)

func main() {
	var (
		socketFlag  = flag.String("socket", "", "RoonPipe socket path (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file")
		playFlag    = flag.Int("play", 0, "Play result N (1-based) instead of listing")
		actionFlag  = flag.String("action", "", "Action title to use with --play (default from config)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("roonpipe-search - Search and play Roon tracks via RoonPipe")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  roonpipe-search <query>")
		fmt.Println("  roonpipe-search --play N <query>")
		fmt.Println()
		fmt.Println("For interactive mode, use: roonpipe-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	settings, err := loadSettings(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *socketFlag != "" {
		settings.SocketPath = *socketFlag
	}
	if *actionFlag != "" {
		settings.DefaultAction = *actionFlag
	}

	client := roonpipe.NewClient(settings.SocketPath, settings.Timeout())
	adapter := launcher.New(client, nil, settings, func(event launcher.Event) {
		if event.Level == launcher.LevelVerbose && !*verboseFlag {
			return
		}
		if event.Level == launcher.LevelError || event.Level == launcher.LevelWarning {
			fmt.Fprintln(os.Stderr, event.Message)
		} else if *verboseFlag {
			fmt.Println(event.Message)
		}
	})

	query := flag.Arg(0)
	items := adapter.Query(context.Background(), query)

	if *playFlag > 0 {
		playResult(adapter, items, *playFlag, settings.DefaultAction)
		return
	}

	for i, item := range items {
		if item.Playable() {
			fmt.Printf("%2d. %s — %s\n", i+1, item.Text, item.Subtext)
		} else {
			fmt.Printf("    %s (%s)\n", item.Text, item.Subtext)
		}
	}
}

func loadSettings(path string) (*config.Settings, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func playResult(adapter *launcher.Adapter, items []model.Item, n int, preferred string) {
	// Collect playable results only; placeholders don't count toward N
	var playable []model.Item
	for _, item := range items {
		if item.Playable() {
			playable = append(playable, item)
		}
	}

	if n > len(playable) {
		fmt.Fprintf(os.Stderr, "No result #%d (got %d results)\n", n, len(playable))
		os.Exit(1)
	}

	item := playable[n-1]
	action := item.Actions[0]
	for _, a := range item.Actions {
		if a.Title == preferred {
			action = a
			break
		}
	}

	if err := adapter.Activate(context.Background(), action); err != nil {
		// Already reported through the event callback
		os.Exit(1)
	}
	fmt.Printf("Playing %s — %s\n", item.Text, item.Subtext)
}
