package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
	"github.com/spf13/cobra"

	"github.com/rmascarenhas/suijin/grid"
	"github.com/rmascarenhas/suijin/hydro"
)

var (
	algo      string
	weightsFP string
)

var rootCmd = &cobra.Command{
	Use:   "suijin <input.asc> <output.asc>",
	Short: "Calculates flow direction and accumulation for given elevation data",
	Args:  cobra.ExactArgs(2),
	Run:   run,
}

func main() {
	rootCmd.Flags().StringVar(&algo, "algo", "", "algorithm to apply: direction or accumulation")
	rootCmd.Flags().StringVar(&weightsFP, "weights", "", "optional per-cell weight raster (.asc) for accumulation")
	rootCmd.MarkFlagRequired("algo")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	if algo != "direction" && algo != "accumulation" {
		log.Fatalf("unknown algorithm %q (want direction or accumulation)", algo)
	}
	input, output := args[0], args[1]

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	uiprogress.Start()
	bar := uiprogress.AddBar(4).AppendCompleted().PrependElapsed()

	dem, err := grid.ReadASC(input)
	if err != nil {
		log.Fatalf("%v", err)
	}
	bar.Incr()
	tt.Print("elevation load complete")

	strc, diags := resolve(dem, input)
	bar.Incr()
	tt.Print("direction resolution complete")

	out := hydro.DirectionRaster(strc.GD, strc.Dirs)
	if algo == "accumulation" {
		fg, err := strc.FlowGraph()
		if err != nil {
			log.Fatalf("%v", err)
		}
		var wts *grid.Real
		if weightsFP != "" {
			if wts, err = grid.ReadASC(weightsFP); err != nil {
				log.Fatalf("%v", err)
			}
		}
		acc, adiags, err := hydro.Accumulate(fg, wts)
		if err != nil {
			log.Fatalf("%v", err)
		}
		diags = appendDiags(diags, adiags)
		out = hydro.AccumulationRaster(strc.GD, strc.Dirs, acc)
	}
	bar.Incr()
	tt.Print("computation complete")

	if err := out.WriteASC(output); err != nil {
		log.Fatalf("%v", err)
	}
	bar.Incr()
	uiprogress.Stop()
	tt.Print("output written")

	report(diags)
}

// resolve computes the drainage structure, reusing a persisted one beside
// the input when its geometry still matches
func resolve(dem *grid.Real, input string) (*hydro.Structure, []hydro.Diagnostic) {
	gobFP := input + ".drain.gob"
	if _, ok := mmio.FileExists(gobFP); ok && algo == "accumulation" {
		if strc, err := hydro.LoadGobStructure(gobFP); err == nil &&
			strc.GD.Ncol == dem.GD.Ncol && strc.GD.Nrow == dem.GD.Nrow {
			slog.Info("reusing persisted drainage structure", "path", gobFP)
			return strc, nil
		}
	}
	dirs, diags := hydro.Directions(dem)
	strc := &hydro.Structure{GD: dem.GD, Dirs: dirs}
	if err := strc.SaveGob(gobFP); err != nil {
		slog.Warn("could not persist drainage structure", "path", gobFP, "error", err)
	}
	return strc, diags
}

// appendDiags merges newly surfaced diagnostics; the resolver and the
// accumulation engine both report AllNoData on an empty input, so a repeat
// of that record is dropped
func appendDiags(diags, more []hydro.Diagnostic) []hydro.Diagnostic {
	has := func(k hydro.DiagKind) bool {
		for _, d := range diags {
			if d.Kind == k {
				return true
			}
		}
		return false
	}
	for _, d := range more {
		if d.Kind == hydro.AllNoData && has(hydro.AllNoData) {
			continue
		}
		diags = append(diags, d)
	}
	return diags
}

func report(diags []hydro.Diagnostic) {
	for _, d := range diags {
		slog.Warn("data-quality condition", "kind", d.Kind.String(), "ncells", len(d.Cells))
	}
}
