package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"seasonfx/internal/app"
	"seasonfx/internal/config"
	"seasonfx/internal/core"
	"seasonfx/internal/render"
)

func main() {
	cfg := app.NewConfig()
	cfg.Audio = false
	cfg.Bind(flag.CommandLine)
	frames := flag.Int("frames", 120, "number of ticks to simulate")
	every := flag.Int("every", 10, "write a PNG every N ticks")
	out := flag.String("out", "frames", "output directory")
	example := flag.Bool("example-config", false, "print an example scene file and exit")
	strikes := flag.Int("strike-every", 0, "strike the centre every N ticks (0 keeps the automatic schedule)")
	flag.Parse()

	if *example {
		fmt.Print(config.Example)
		return
	}
	if *frames <= 0 || *every <= 0 {
		log.Fatalf("-frames and -every must be positive")
	}

	settings, err := cfg.Settings(flag.CommandLine)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	sess, err := app.NewSession(settings, false)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	defer sess.Close()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("output directory: %v", err)
	}

	step := core.NewFixedStep(settings.TPS).Step()
	frame := image.NewRGBA(image.Rect(0, 0, settings.Width, settings.Height))
	written, failed := 0, 0
	for i := 1; i <= *frames; i++ {
		if *strikes > 0 && i%*strikes == 0 {
			sess.Scene.StrikeCenter()
		}
		sess.Scene.Update(step)
		if i%*every != 0 {
			continue
		}
		sess.Scene.Compose(frame, settings.Background)
		path := filepath.Join(*out, fmt.Sprintf("frame_%05d.png", i))
		if err := render.WritePNG(path, frame); err != nil {
			log.Printf("frame %d: %v", i, err)
			failed++
			continue
		}
		written++
	}
	fmt.Printf("Wrote %d frames to %s (%d failed)\n", written, *out, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
