// Package pointcloud implements the binary PLY-like ingestion adapter
// of spec.md §4.5/§6: parsing a little-endian point cloud file and
// turning it into one single-pixel target slice per point.
package pointcloud

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"

	"github.com/doismellburning/phasefield/internal/field"
	"github.com/doismellburning/phasefield/internal/solvererr"
)

// Point is one 3D point from the cloud, in the file's native units.
type Point struct {
	X, Y, Z float64
}

// Cloud is a parsed point cloud plus its axis-wise bounding box,
// grounded on the original transform_ply_data's min/max normalization.
type Cloud struct {
	Points []Point
	BoundX r1.Interval
	BoundY r1.Interval
	BoundZ r1.Interval
}

// Load parses the ASCII-header-then-binary-body format of spec.md §6:
// header lines terminated by '\n' ending with a line containing
// "end_header", followed by 12-byte little-endian float32 (x, y, z)
// records until EOF.
func Load(r io.Reader) (*Cloud, error) {
	br := bufio.NewReader(r)

	if err := skipHeader(br); err != nil {
		return nil, solvererr.Wrap(solvererr.IoError, "reading point cloud header", err)
	}

	var points []Point
	var bx, by, bz r1.Interval
	first := true

	var rec [12]byte
	for {
		_, err := io.ReadFull(br, rec[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, solvererr.Wrap(solvererr.IoError, "reading point cloud body", err)
		}

		x := float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[0:4])))
		y := float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[4:8])))
		z := float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[8:12])))

		v := r3.Vector{X: x, Y: y, Z: z}
		points = append(points, Point{X: v.X, Y: v.Y, Z: v.Z})

		if first {
			bx = r1.Interval{Lo: v.X, Hi: v.X}
			by = r1.Interval{Lo: v.Y, Hi: v.Y}
			bz = r1.Interval{Lo: v.Z, Hi: v.Z}
			first = false
		} else {
			bx = bx.Union(r1.Interval{Lo: v.X, Hi: v.X})
			by = by.Union(r1.Interval{Lo: v.Y, Hi: v.Y})
			bz = bz.Union(r1.Interval{Lo: v.Z, Hi: v.Z})
		}
	}

	return &Cloud{Points: points, BoundX: bx, BoundY: by, BoundZ: bz}, nil
}

func skipHeader(br *bufio.Reader) error {
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if err == io.EOF && strings.Contains(line, "end_header") {
				return nil
			}
			return fmt.Errorf("no end_header line found: %w", err)
		}
		if strings.Contains(line, "end_header") {
			return nil
		}
	}
}

// FocalPoint is one point normalized onto the solver's pixel grid and
// distance range, per original_source/UltrasonicHaptics.py's
// transform_ply_data.
type FocalPoint struct {
	GridX, GridY int
	DistanceM    float64
}

// FocalSet normalizes every point in the cloud to an integer (x, y)
// grid index in [0, gridSize) and a distance z/max(z)*maxDistM, which
// lies in [0, maxDistM] only when no z is negative, reproducing the original's exact (and slightly asymmetric)
// normalization: x/y use the full min/max bounding box, while z is
// scaled only by its maximum (not min-max), matching
// `distances = points[:, 2] / np.max(points[:, 2]) * max_dist`.
func (c *Cloud) FocalSet(gridSize int, maxDistM float64) []FocalPoint {
	spanX := c.BoundX.Length()
	spanY := c.BoundY.Length()

	maxZ := c.BoundZ.Hi
	if maxZ == 0 {
		maxZ = 1 // avoid division by zero; matches no real-world input anyway
	}

	out := make([]FocalPoint, len(c.Points))
	for i, p := range c.Points {
		nx := 0.0
		if spanX != 0 {
			nx = (p.X - c.BoundX.Lo) / spanX
		}
		ny := 0.0
		if spanY != 0 {
			ny = (p.Y - c.BoundY.Lo) / spanY
		}

		gx := int(nx * float64(gridSize-1))
		gy := int(ny * float64(gridSize-1))

		out[i] = FocalPoint{
			GridX:     clampIndex(gx, gridSize),
			GridY:     clampIndex(gy, gridSize),
			DistanceM: p.Z / maxZ * maxDistM,
		}
	}
	return out
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// TargetSlice builds the single-hot N×N target amplitude grid spec.md
// §4.5 describes: every entry zero except (GridX, GridY), which is 1.
func (fp FocalPoint) TargetSlice(gridSize int) *field.Real {
	out := field.NewReal(gridSize)
	out.Set(fp.GridX, fp.GridY, 1)
	return out
}
