package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/audio"
	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/Garsondee/Ball-Fuse/internal/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	width := flag.Float64("width", 540, "playfield width in world pixels")
	height := flag.Float64("height", 960, "playfield height in world pixels")
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed")
	volume := flag.Float64("volume", 0.6, "cue volume in [0,1]")
	mute := flag.Bool("mute", false, "start muted")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "error: width and height must be > 0")
		os.Exit(2)
	}

	sound := audio.NewBank(*volume)
	sound.SetMuted(*mute)
	if err := sound.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(fmt.Errorf("create screen: %w", err))
	}
	if err := screen.Init(); err != nil {
		log.Fatal(fmt.Errorf("init screen: %w", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	app := tui.NewApp(screen, game.DefaultConfig(*width, *height), *seed, sound)
	err = app.Run(ctx)
	cancel()
	screen.Fini()
	if err != nil && err != context.Canceled {
		log.Fatal(err)
	}
	fmt.Printf("best score: %d\n", app.Best())
}
