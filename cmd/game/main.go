package main

import (
	"flag"
	"log"
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/app"
	"github.com/Garsondee/Ball-Fuse/internal/audio"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	width := flag.Int("width", 540, "playfield width")
	height := flag.Int("height", 960, "playfield height")
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed")
	autoplay := flag.Bool("autoplay", false, "drop automatically every 500ms")
	blockGrowing := flag.Bool("block-growing", false, "block merges while a ball grows")
	volume := flag.Float64("volume", 0.6, "cue volume in [0,1]")
	mute := flag.Bool("mute", false, "start muted")
	flag.Parse()

	sound := audio.NewBank(*volume)
	sound.SetMuted(*mute)
	if err := sound.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer sound.Close()

	g := app.New(app.Options{
		Width:        *width,
		Height:       *height,
		Seed:         *seed,
		Autoplay:     *autoplay,
		BlockGrowing: *blockGrowing,
		Sound:        sound,
	})
	ebiten.SetWindowTitle("Ball Fuse")
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
