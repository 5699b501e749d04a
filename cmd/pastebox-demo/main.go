package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/pastebox"
	"github.com/iw2rmb/pastebox/config"
	"github.com/iw2rmb/pastebox/editor"
	"github.com/iw2rmb/pastebox/emoji"
	"github.com/iw2rmb/pastebox/imaging"
	"github.com/iw2rmb/pastebox/internal/logging"
	"github.com/iw2rmb/pastebox/paste"
)

type model struct {
	editor editor.Model
	sent   []editor.SubmitMsg
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q", "esc":
			return m, tea.Quit
		}
	case editor.SubmitMsg:
		m.sent = append(m.sent, msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.editor.View() }

func main() {
	configPath := flag.String("config", "", "config file (.toml, .yaml, .yml or .json)")
	imagePath := flag.String("image", "", "image file offered as the clipboard on ctrl+v")
	logPath := flag.String("log", "", "log file (overrides logging.output)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(pastebox.BuildInfo())
		return
	}
	if err := run(*configPath, *imagePath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "pastebox-demo:", err)
		os.Exit(1)
	}
}

func run(configPath, imagePath, logPath string) error {
	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	logCfg := cfg.LogConfig()
	switch {
	case logPath != "":
		logCfg.Output = logPath
	case logCfg.Output == "stderr" || logCfg.Output == "stdout":
		// The terminal belongs to the program while it runs.
		logCfg.Output = "discard"
	}
	log, closer, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Info("starting", "version", pastebox.Version(), "config", configPath)

	ed := editor.New(editor.Config{
		Text:         cfg.Editor.Text,
		Placeholder:  "Type a message, paste text or an image, enter to send",
		Style:        editor.DefaultStyle(),
		HistoryLimit: cfg.Editor.HistoryLimit,
		Resolver:     newResolver(cfg, log),
		Clipboard:    newClipboard(imagePath),
		Emoji:        catalogOf(cfg),
		EmojiAdvance: cfg.EmojiAdvance(),
		Logger:       log,
	})

	p := tea.NewProgram(model{editor: ed}, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if configPath != "" {
		loader.OnChange(func(c *config.Config) {
			adv := c.EmojiAdvance()
			p.Send(editor.ConfigMsg{
				Resolver:     newResolver(c, log),
				Emoji:        catalogOf(c),
				EmojiAdvance: &adv,
			})
		})
		if err := loader.Watch(ctx); err != nil {
			log.Warn("config watch disabled", "err", err)
		} else {
			go func() {
				for err := range loader.Errors() {
					log.Warn("config reload failed", "err", err)
				}
			}()
		}
		defer loader.Close()
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok {
		printSent(m.sent)
	}
	return nil
}

func newResolver(cfg *config.Config, log *slog.Logger) *paste.Resolver {
	n := imaging.NewNormalizer(log)
	n.Quality = cfg.Paste.Quality
	return paste.NewResolver(paste.Options{
		MaxImageBytes: cfg.Paste.MaxImageBytes,
		ReadTimeout:   cfg.ReadTimeout(),
		Normalizer:    n,
		Logger:        log,
	})
}

func catalogOf(cfg *config.Config) emoji.Catalog {
	if len(cfg.Emoji.Catalog) == 0 {
		return emoji.DefaultCatalog()
	}
	return emoji.Catalog(cfg.Emoji.Catalog)
}

func printSent(sent []editor.SubmitMsg) {
	for i, msg := range sent {
		fmt.Printf("--- message %d ---\n%s\n", i+1, msg.Value)
		for j, img := range msg.Images {
			fmt.Printf("[image %d] %s, %d bytes as data URL\n", j+1, img.MediaType(), len(img))
		}
	}
	if len(sent) == 0 {
		fmt.Println("no messages sent")
	}
}
