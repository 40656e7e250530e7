package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/config"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/engine"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/index"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/summarizer"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/textproc"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var webDir string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/orchestra-chatbot/config.yaml if not provided)")
	flag.StringVar(&webDir, "web-dir", "", "Directory of scraped website pages (*.txt) to load")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 && webDir == "" {
		fmt.Println("Usage: orchestra-chatbot [--config=config.yaml] [--web-dir=dir] newsletter1.txt [newsletter2.txt ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pre := textproc.NewPreprocessor()

	var detector domain.TopicDetector
	switch cfg.Topics.Type {
	case "capitalized", "":
		detector = index.NewCapitalizedDetector()
	default:
		log.Fatalf("unknown topic detector: %s", cfg.Topics.Type)
	}

	var sum domain.Summarizer
	switch cfg.Summarizer.Type {
	case "frequency", "":
		sum = summarizer.NewFrequencySummarizer(pre)
	default:
		log.Fatalf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	eng := engine.New(cfg, engine.Deps{
		Preprocessor: pre,
		Detector:     detector,
		Summarizer:   sum,
	})

	loaded := 0
	for _, path := range inputs {
		if eng.IngestFile(path) {
			loaded++
		} else {
			log.Printf("skipped %s: could not ingest", path)
		}
	}
	if webDir != "" {
		loaded += eng.IngestDir(webDir)
	}
	if loaded == 0 {
		log.Fatalf("no documents could be loaded")
	}

	m := tui.New(eng)
	if err := tea.NewProgram(m).Start(); err != nil {
		log.Fatal(err)
	}
}
