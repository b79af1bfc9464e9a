package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/uwimg/uwimg"
)

var _ = fmt.Print

type frame_metadata struct {
	Number int    `json:"number"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Delay  string `json:"delay"`
	Hash   string `json:"fingerprint"`
}

type metadata struct {
	LoopCount uint             `json:"loop_count"`
	Frames    []frame_metadata `json:"frames"`
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) == 1 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/frames input-file [output-prefix]")
		os.Exit(1)
	}
	a, err := uwimg.LoadAnimation(os.Args[1])
	if err != nil {
		return
	}
	output_prefix := os.Args[1]
	if len(os.Args) == 3 {
		output_prefix = os.Args[2]
	}
	m := metadata{LoopCount: a.LoopCount}
	for i, f := range a.Frames {
		m.Frames = append(m.Frames, frame_metadata{
			Number: i + 1, Width: f.Image.W, Height: f.Image.H, Delay: f.Delay.String(),
			Hash: fmt.Sprintf("%016x", f.Image.Fingerprint()),
		})
		if err = uwimg.Save(f.Image, fmt.Sprintf("%s-%05d.png", output_prefix, i+1)); err != nil {
			return
		}
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return
	}
	if err = os.WriteFile(fmt.Sprintf("%s-metadata.json", output_prefix), b, 0o666); err != nil {
		return
	}
	fmt.Printf("%d frames decoded to %s-*.[png|json]\n", len(a.Frames), output_prefix)
}
