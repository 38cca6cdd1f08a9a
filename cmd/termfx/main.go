package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"seasonfx/internal/app"
	"seasonfx/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Audio = false
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	settings, err := cfg.Settings(flag.CommandLine)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	screen, err := term.Open()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	w, h := term.FrameSize(screen)
	settings.Width, settings.Height = w, h

	sess, err := app.NewSession(settings, cfg.Audio)
	if err != nil {
		screen.Fini()
		log.Fatalf("scene: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	viewer := term.NewViewer(screen, sess.Scene, settings.TPS, settings.Background, settings.Seed)
	err = viewer.Run(ctx)
	stop()
	sess.Close()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
