package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/blobcaller/observer"
	"github.com/milk9111/blobcaller/prefabs"
)

func main() {
	levelName := flag.String("level", "meadow", "level name in levels/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "enable debug mode")
	observeAddr := flag.String("observe", "", "serve world events (/observe) and snapshots (/snapshot) at this address (e.g. :8080)")
	watch := flag.Bool("watch", false, "hot reload prefabs, scripts and levels from disk")
	flag.Parse()

	game, err := NewGame(*levelName, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if *watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			game.watcher = watcher
		}
	}

	if *observeAddr != "" {
		game.observer = observer.NewServer(log.Default())
		mux := http.NewServeMux()
		mux.Handle("/observe", game.observer.WSHandler())
		mux.Handle("/snapshot", game.observer.SnapshotHandler())
		go func() {
			log.Printf("observer listening on %s/observe", *observeAddr)
			if err := http.ListenAndServe(*observeAddr, mux); err != nil {
				log.Printf("observer: %v", err)
			}
		}()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("blobcaller")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
