package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/git-conflict/audio"
	"github.com/lixenwraith/git-conflict/config"
	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/gui"
	"github.com/lixenwraith/git-conflict/render"
)

var (
	configFlag = flag.String("config", constants.DefaultConfigFile, "Settings file, created on first sound toggle")
	levelsFlag = flag.String("levels", "", "Level pack file, overrides levels_file")
	debugFlag  = flag.Bool("debug", false, "Show the debug overlay")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal(err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	pack, err := cfg.LoadLevels(*levelsFlag)
	if err != nil {
		log.Fatal(err)
	}
	theme, err := render.NewTheme(cfg.Display.Theme)
	if err != nil {
		log.Fatal(err)
	}

	sound := audio.NewSoundManager(cfg.SoundSettings())
	if err := sound.Initialize(); err != nil {
		log.Printf("audio init failed: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	game, err := gui.New(pack, cfg.Rules(), gui.Options{
		Sound: sound,
		Theme: theme,
		Debug: *debugFlag || cfg.Display.Debug,
		OnMute: func(enabled bool) {
			if err := cfg.SetSoundEnabled(enabled); err != nil {
				log.Printf("save settings: %v", err)
			}
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	w, h := game.Size()
	ebiten.SetWindowTitle("Git Conflict")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
