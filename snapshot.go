package main

import (
	"log"
	"sync"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/blobcaller/observer"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copySnapshot puts a YAML summary of the world on the system clipboard.
func (g *Game) copySnapshot() {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		log.Printf("clipboard: %v", clipboardErr)
		return
	}
	data, err := yaml.Marshal(observer.TakeSnapshot(g.world, g.tick))
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "snapshot copied"
}
