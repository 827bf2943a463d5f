// Command mazegen generates a single maze offline and prints it.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/maze"
)

var (
	params     maze.Params
	pngPath    string
	cellPixels int
	verbose    bool
)

func init() {
	flag.IntVar(&params.Width, "width", 16, "maze width")
	flag.IntVar(&params.Depth, "depth", 16, "maze depth")
	flag.IntVar(&params.WeightRange, "weights", maze.DefaultWeightRange, "number of distinct cell weights")
	flag.Uint64Var(&params.Seed, "seed", 1, "weight seed")
	flag.IntVar(&params.Start.X, "x", 0, "start column")
	flag.IntVar(&params.Start.Z, "z", 0, "start row")
	flag.StringVar(&pngPath, "png", "", "also write a PNG to this path")
	flag.IntVar(&cellPixels, "cell", 9, "PNG pixels per cell")
	flag.BoolVar(&verbose, "v", false, "log every committed cell")
}

func main() {
	flag.Parse()

	maze.Log.SetLevel(logrus.WarnLevel)
	if verbose {
		maze.Log.SetLevel(logrus.DebugLevel)
	}

	res, err := maze.Build(params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mazegen:", err)
		os.Exit(2)
	}

	fmt.Print(res.String())
	fmt.Println(res.Summary())

	if pngPath == "" {
		return
	}
	f, err := os.Create(pngPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mazegen:", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, res.Image(cellPixels)); err != nil {
		fmt.Fprintln(os.Stderr, "mazegen:", err)
		os.Exit(1)
	}
}
