package pointcloud

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/doismellburning/phasefield/internal/solvererr"
)

// GenerateSphere writes a sphere point cloud of the given radius in the binary
// PLY-like format of spec.md §6, supplementing the distillation with
// original_source/generate_ply.py's generate_ply_sphere fixture
// generator (used by scenario S5 and by cmd/plygen).
func GenerateSphere(w io.Writer, radius float64, numTheta, numPhi int) error {
	numPoints := numTheta * numPhi

	header := fmt.Sprintf(
		"ply\nformat binary_little_endian 1.0\nelement vertex %d\nproperty float x\nproperty float y\nproperty float z\nend_header\n",
		numPoints,
	)
	if _, err := io.WriteString(w, header); err != nil {
		return solvererr.Wrap(solvererr.IoError, "writing ply header", err)
	}

	var rec [12]byte
	for ip := 0; ip < numPhi; ip++ {
		phi := float64(ip) / float64(numPhi-1) * math.Pi
		sinPhi, cosPhi := math.Sincos(phi)
		for it := 0; it < numTheta; it++ {
			theta := float64(it) / float64(numTheta-1) * 2 * math.Pi
			sinTheta, cosTheta := math.Sincos(theta)

			x := radius * sinPhi * cosTheta
			y := radius * sinPhi * sinTheta
			z := radius * cosPhi

			binary.LittleEndian.PutUint32(rec[0:4], math.Float32bits(float32(x)))
			binary.LittleEndian.PutUint32(rec[4:8], math.Float32bits(float32(y)))
			binary.LittleEndian.PutUint32(rec[8:12], math.Float32bits(float32(z)))

			if _, err := w.Write(rec[:]); err != nil {
				return solvererr.Wrap(solvererr.IoError, "writing ply point", err)
			}
		}
	}

	return nil
}
