//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"seasonfx/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	settings, err := cfg.Settings(flag.CommandLine)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	sess, err := app.NewSession(settings, cfg.Audio)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	defer sess.Close()

	game := app.New(sess, settings.Scale, cfg.HUD)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("seasonfx: " + strings.Join(settings.Effects, " + "))
	ebiten.SetTPS(settings.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
