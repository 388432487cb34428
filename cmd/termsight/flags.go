package main

import (
	"flag"

	"github.com/lixenwraith/termsight/config"
	"github.com/lixenwraith/termsight/dither"
)

// cliFlags holds command line overrides, only flags that were set apply
type cliFlags struct {
	config      string
	log         string
	fps         int
	dither      uint
	method      string
	scene       string
	image       string
	color       string
	async       bool
	printConfig string
}

func (f *cliFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "Config file (.toml, .yaml), default ~/.config/termsight/config.toml")
	fs.StringVar(&f.log, "log", "", "Log file path")
	fs.IntVar(&f.fps, "fps", config.DefaultFPS, "Frame rate (1-240)")
	fs.UintVar(&f.dither, "dither", 2, "Dither level (0-4)")
	fs.StringVar(&f.method, "method", "bayer", "Dither method: bayer, floyd-steinberg")
	fs.StringVar(&f.scene, "scene", config.SceneSpheres, "Scene: spheres, cube, image")
	fs.StringVar(&f.image, "image", "", "Image path for the image scene (implies -scene image)")
	fs.StringVar(&f.color, "color", "auto", "Color mode: auto, truecolor, 256, mono")
	fs.BoolVar(&f.async, "async", false, "Render on a worker goroutine")
	fs.StringVar(&f.printConfig, "print-config", "", "Print the effective config as toml or yaml and exit")
}

// configPath resolves -config, falling back to the default location
func (f *cliFlags) configPath() string {
	if f.config != "" {
		return f.config
	}
	return config.DefaultPath()
}

// apply copies explicitly set flags over cfg
func (f *cliFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	imageSet, sceneSet := false, false
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "log":
			cfg.Log.Path = f.log
		case "fps":
			cfg.FPS = f.fps
		case "dither":
			// Clamp before narrowing so huge values do not wrap to low levels
			cfg.Dither.Level = uint32(min(f.dither, uint(dither.MaxLevel)))
		case "method":
			cfg.Dither.Method = f.method
		case "scene":
			cfg.Scene, sceneSet = f.scene, true
		case "image":
			cfg.ImagePath, imageSet = f.image, true
		case "color":
			cfg.Color = f.color
		case "async":
			cfg.AsyncRender = f.async
		}
	})
	if imageSet && !sceneSet {
		cfg.Scene = config.SceneImage
	}
}
