package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yash-srivastava19/recall/internal/config"
	"github.com/yash-srivastava19/recall/internal/dataset"
	"github.com/yash-srivastava19/recall/internal/kv"
	"github.com/yash-srivastava19/recall/internal/notes"
	"github.com/yash-srivastava19/recall/internal/pins"
	"github.com/yash-srivastava19/recall/internal/ui"
)

const version = "0.1.0"

const usage = `recall — browse, search and pin notes in the terminal

Usage:
  recall [--debug]                   open TUI
  recall list [query]                list notes, filtered by query
  recall pinned                      list pinned notes
  recall pin <id>                    pin or unpin a note
  recall clear                       unpin every note
  recall show <id>                   print one note
  recall config [--write]            print (or write) the effective config
  recall version

Config: $XDG_CONFIG_HOME/recall/config.json
Env:    RECALL_DATASET, RECALL_STORAGE, RECALL_DEBUG

TUI keys:
  j/k  navigate    p    pin         /    search      Enter open
  m    memory      x    remove pin  C    clear pins  y     copy
  ?    help        q    quit
`

func main() {
	args, debug := stripFlag(os.Args[1:], "--debug")

	cfg, err := config.Load()
	if err != nil {
		die("config error: %v", err)
	}
	if debug {
		cfg.Debug = true
	}

	if len(args) == 0 {
		runTUI(cfg)
		return
	}

	switch args[0] {
	case "version", "--version", "-v":
		fmt.Println("recall " + version)
		return

	case "help", "--help", "-h":
		fmt.Print(usage)
		return

	case "config":
		if len(args) > 1 && args[1] == "--write" {
			if err := config.Save(cfg); err != nil {
				die("config: %v", err)
			}
			fmt.Println("wrote " + config.Path())
			return
		}
		data, _ := json.MarshalIndent(cfg, "", "  ")
		fmt.Println(string(data))
		return
	}

	logger := newLogger(os.Stderr, cfg.Debug)
	store, mirror, closeKV := openStore(cfg, logger)
	defer closeKV()
	mirror.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "recall: %v\n", err)
	}

	switch args[0] {
	case "list", "ls":
		query := strings.Join(args[1:], " ")
		found := notes.FilterFunc(cfg.SearchMode)(store.All(), query)
		if len(found) == 0 {
			fmt.Fprintf(os.Stderr, "no notes match %q\n", query)
			closeKV()
			os.Exit(1)
		}
		for _, n := range found {
			printRow(n)
		}

	case "pinned":
		pinned := store.Pinned()
		if len(pinned) == 0 {
			fmt.Println("nothing pinned yet")
			return
		}
		for _, n := range pinned {
			printRow(n)
		}

	case "pin", "p":
		id := parseID(args[1:], "pin")
		if !store.TogglePin(id) {
			closeKV()
			die("no note with id %d", id)
		}
		n, _ := store.Get(id)
		if n.Pinned {
			fmt.Printf("pinned %d  %s\n", n.ID, n.Title)
		} else {
			fmt.Printf("unpinned %d  %s\n", n.ID, n.Title)
		}

	case "clear":
		count := len(store.PinnedIDs())
		store.ClearAllPins()
		fmt.Printf("cleared %d pinned notes\n", count)

	case "show":
		id := parseID(args[1:], "show")
		n, ok := store.Get(id)
		if !ok {
			closeKV()
			die("no note with id %d", id)
		}
		printNote(n)

	default:
		fmt.Fprintf(os.Stderr, "recall: unknown command %q\n\n", args[0])
		fmt.Print(usage)
		closeKV()
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config) {
	logger, closeLog := fileLogger(cfg)
	defer closeLog()

	store, mirror, closeKV := openStore(cfg, logger)
	defer closeKV()

	app := ui.New(cfg, store, logger)
	mirror.OnError = app.ReportError

	logger.Info("starting", "notes", store.Len(), "pinned", len(store.PinnedIDs()), "storage", cfg.Storage, "key", mirror.Key())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		die("%v", err)
	}
}

// openStore loads the dataset and binds its pins to the configured backend.
// The returned func closes the backend.
func openStore(cfg *config.Config, logger *slog.Logger) (*notes.Store, *pins.Mirror, func()) {
	ds, err := dataset.Load(cfg.Dataset)
	if err != nil {
		die("dataset: %v", err)
	}
	store, err := notes.NewStore(ds, logger)
	if err != nil {
		die("dataset: %v", err)
	}
	backend, err := kv.Open(cfg.Storage, cfg.StateDir, logger)
	if err != nil {
		die("storage: %v", err)
	}
	mirror := pins.New(backend, cfg.PinKey, logger)
	if err := mirror.Bind(store); err != nil {
		_ = backend.Close()
		die("storage: %v", err)
	}
	return store, mirror, func() { _ = backend.Close() }
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// fileLogger logs to cfg.LogFile since the TUI owns the terminal. If the file
// can't be opened, logs are discarded.
func fileLogger(cfg *config.Config) (*slog.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			return newLogger(f, cfg.Debug), func() { f.Close() }
		}
	}
	return newLogger(io.Discard, cfg.Debug), func() {}
}

func printRow(n notes.Note) {
	mark := "[ ]"
	if n.Pinned {
		mark = "[*]"
	}
	tags := ""
	if len(n.Tags) > 0 {
		tags = "  #" + strings.Join(n.Tags, " #")
	}
	fmt.Printf("%4d %s %-40s%s\n", n.ID, mark, n.Title, tags)
}

func printNote(n notes.Note) {
	pinned := ""
	if n.Pinned {
		pinned = "  [pinned]"
	}
	fmt.Printf("%s%s\n", n.Title, pinned)
	meta := []string{fmt.Sprintf("id %d", n.ID)}
	if n.Author != "" {
		meta = append(meta, n.Author)
	}
	if t, ok := n.Created(); ok {
		meta = append(meta, t.Local().Format("Jan 02, 2006 15:04"))
	}
	fmt.Println(strings.Join(meta, " · "))
	if len(n.Tags) > 0 {
		fmt.Println("#" + strings.Join(n.Tags, " #"))
	}
	if n.Description != "" {
		fmt.Println()
		fmt.Println(n.Description)
	}
}

func parseID(args []string, cmd string) int {
	if len(args) == 0 {
		die("usage: recall %s <id>", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		die("invalid id %q", args[0])
	}
	return id
}

// stripFlag removes every occurrence of flag from args.
func stripFlag(args []string, flag string) ([]string, bool) {
	out := args[:0:0]
	found := false
	for _, a := range args {
		if a == flag {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "recall: "+format+"\n", args...)
	os.Exit(1)
}
