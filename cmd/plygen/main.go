// Command plygen writes a synthetic sphere point cloud, for exercising
// phasesolve's point-cloud path without real scan hardware. Grounded
// on original_source/generate_ply.py's generate_ply_sphere.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/doismellburning/phasefield/internal/pointcloud"
)

func main() {
	var (
		out      = pflag.StringP("out", "o", "sphere.ply", "Output PLY file path.")
		radius   = pflag.Float64("radius", 0.02, "Sphere radius, meters.")
		numTheta = pflag.Int("num-theta", 50, "Number of azimuthal samples.")
		numPhi   = pflag.Int("num-phi", 25, "Number of polar samples.")
	)
	pflag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal("creating output file", "err", err)
	}
	defer f.Close()

	if err := pointcloud.GenerateSphere(f, *radius, *numTheta, *numPhi); err != nil {
		log.Fatal("generating sphere", "err", err)
	}

	fmt.Fprintf(os.Stderr, "wrote %d points to %s\n", (*numTheta)*(*numPhi), *out)
}
