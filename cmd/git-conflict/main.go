package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/git-conflict/audio"
	"github.com/lixenwraith/git-conflict/config"
	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/core"
	"github.com/lixenwraith/git-conflict/input"
	"github.com/lixenwraith/git-conflict/render"
)

var (
	configFlag = flag.String("config", constants.DefaultConfigFile, "Settings file, created on first sound toggle")
	levelsFlag = flag.String("levels", "", "Level pack file, overrides levels_file")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+constants.LogDir+" and show the debug overlay")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	deps, err := loadDeps()
	if err != nil {
		fmt.Fprintf(os.Stderr, "git-conflict: %v\n", err)
		os.Exit(1)
	}

	// Audio failure leaves the game silent
	if err := deps.Sound.Initialize(); err != nil {
		log.Printf("audio init failed: %v (continuing without audio)", err)
	}
	defer deps.Sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetTerminalReset(screen.Fini)
	defer screen.Fini()
	screen.HideCursor()
	deps.Screen = screen

	a, err := newApp(deps)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "git-conflict: %v\n", err)
		os.Exit(1)
	}
	a.run()
}

// loadDeps resolves settings, levels, theme and keys before the terminal is taken over
func loadDeps() (appDeps, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return appDeps{}, err
	}
	cfg.ApplyEnv()
	if *debugFlag {
		cfg.Display.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return appDeps{}, err
	}

	pack, err := cfg.LoadLevels(*levelsFlag)
	if err != nil {
		return appDeps{}, err
	}
	log.Printf("loaded %d levels, %d puzzles", len(pack.Levels), len(pack.Puzzles))

	theme, err := render.NewTheme(cfg.Display.Theme)
	if err != nil {
		return appDeps{}, err
	}

	keys := input.DefaultKeyTable()
	if len(cfg.Keys) > 0 {
		override, err := input.LoadKeyConfig(cfg.Keys)
		if err != nil {
			return appDeps{}, fmt.Errorf("keys: %w", err)
		}
		keys = input.MergeKeyTable(keys, override)
	}

	return appDeps{
		Config: cfg,
		Pack:   pack,
		Keys:   keys,
		Theme:  theme,
		Sound:  audio.NewSoundManager(cfg.SoundSettings()),
	}, nil
}
