// Command phasesolve is the main host driver: it loads a target (a
// point cloud or a raster image), runs the Solver for each focal
// point, and optionally transmits the resulting phases over a serial
// link. Flag style follows src/appserver.go and cmd/direwolf/main.go.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/doismellburning/phasefield/internal/config"
	"github.com/doismellburning/phasefield/internal/field"
	"github.com/doismellburning/phasefield/internal/pointcloud"
	"github.com/doismellburning/phasefield/internal/rasterfield"
	"github.com/doismellburning/phasefield/internal/solver"
	"github.com/doismellburning/phasefield/internal/transmit"
)

func main() {
	var (
		configPath = pflag.String("config", "", "Optional YAML config file; flags below override it.")
		target     = pflag.String("target", "", "Target file: .ply point cloud or a raster image.")
		out        = pflag.String("out", "", "Output CSV path for solved amplitudes/phases (stdout if empty).")
		port       = pflag.StringP("port", "p", "", "Serial port to transmit on, e.g. /dev/ttyUSB0 or COM5.")
		baud       = pflag.Int("baud", 0, "Baud rate (0 = leave config default).")
		send       = pflag.Bool("send", false, "Actually transmit phases over the serial port.")
		debug      = pflag.Bool("debug", false, "Verbose logging.")
		distance   = pflag.Float64("distance", 0, "Target-plane distance in meters for raster targets (0 = use max-dist).")
		maxDist    = pflag.Float64("max-dist", 0, "Maximum focal distance in meters (0 = use config default).")
		gridSize   = pflag.Int("grid-size", 0, "Pixel grid size N (0 = use config default).")
		iters      = pflag.Int("iters", 0, "Iteration count (0 = use config default).")
		sliceSize  = pflag.Float64("slice-size", 0, "Physical side length of the emitter array, meters.")
		emitSize   = pflag.Float64("emitter-size", 0, "Physical diameter of one emitter, meters.")
		ampRes     = pflag.Int("amp-res", -1, "Amplitude resolution, 0 disables amplitude control.")
		phaseRes   = pflag.Int("phase-res", -1, "Phase resolution.")
		freq       = pflag.Float64("freq", 0, "Emitter frequency, Hz.")
		soundSpeed = pflag.Float64("sound-speed", 0, "Speed of sound in the medium, m/s.")
		workers    = pflag.Int("workers", runtime.NumCPU(), "Bounded worker count for batch solving.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - solve emitter phases for a target amplitude pattern\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s --target FILE [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *target == "" {
		fmt.Fprintln(os.Stderr, "a --target file is required")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	applyOverrides(&cfg, *port, *baud, *maxDist, *gridSize, *iters, *sliceSize, *emitSize, *ampRes, *phaseRes, *freq, *soundSpeed)

	jobs, err := loadJobs(*target, cfg, *distance)
	if err != nil {
		log.Fatal("loading target", "target", *target, "err", err)
	}
	log.Info("solving", "focal points", len(jobs), "grid size", cfg.GridSize, "iters", cfg.Iters)

	results := solveAll(jobs, cfg, *workers)

	if err := writeResults(*out, results); err != nil {
		log.Fatal("writing results", "err", err)
	}

	if *send {
		if err := transmitAll(cfg, results); err != nil {
			log.Fatal("transmitting phases", "err", err)
		}
	}
}

// job is one target amplitude slice plus the distance to solve it at.
type job struct {
	target   *field.Real
	distance float64
}

func loadJobs(path string, cfg config.Config, distance float64) ([]job, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ext == ".ply" {
		cloud, err := pointcloud.Load(f)
		if err != nil {
			return nil, err
		}
		focalPoints := cloud.FocalSet(cfg.GridSize, cfg.MaxDistM)
		jobs := make([]job, len(focalPoints))
		for i, fp := range focalPoints {
			jobs[i] = job{target: fp.TargetSlice(cfg.GridSize), distance: fp.DistanceM}
		}
		return jobs, nil
	}

	grid, err := rasterfield.Load(f, cfg.GridSize)
	if err != nil {
		return nil, err
	}
	d := distance
	if d == 0 {
		d = cfg.MaxDistM
	}
	return []job{{target: grid, distance: d}}, nil
}

func solveAll(jobs []job, cfg config.Config, workers int) []*solver.Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]*solver.Result, len(jobs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, j job) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := solver.Solve(context.Background(), j.target, cfg.SolverOptions(j.distance))
			if err != nil {
				log.Error("solve failed", "index", i, "err", err)
				return
			}
			results[i] = res
		}(i, j)
	}

	wg.Wait()
	return results
}

func transmitAll(cfg config.Config, results []*solver.Result) error {
	if cfg.Port == "" {
		return fmt.Errorf("no serial port configured")
	}

	p, err := transmit.Open(cfg.Port, cfg.Baud)
	if err != nil {
		return err
	}
	defer p.Close()

	for i, res := range results {
		if res == nil {
			continue
		}
		if err := transmit.SendPhases(p, res.Phases, cfg.PhaseRes); err != nil {
			return fmt.Errorf("focal point %d: %w", i, err)
		}
	}
	return nil
}

func writeResults(path string, results []*solver.Result) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, res := range results {
		if res == nil {
			continue
		}
		row := []string{strconv.Itoa(i)}
		for _, a := range res.Amps {
			row = append(row, strconv.FormatFloat(a, 'g', -1, 64))
		}
		for _, p := range res.Phases {
			row = append(row, strconv.FormatFloat(p, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func applyOverrides(cfg *config.Config, port string, baud int, maxDist float64, gridSize, iters int, sliceSize, emitSize float64, ampRes, phaseRes int, freq, soundSpeed float64) {
	if port != "" {
		cfg.Port = port
	}
	if baud != 0 {
		cfg.Baud = baud
	}
	if maxDist != 0 {
		cfg.MaxDistM = maxDist
	}
	if gridSize != 0 {
		cfg.GridSize = gridSize
	}
	if iters != 0 {
		cfg.Iters = iters
	}
	if sliceSize != 0 {
		cfg.SliceSizeM = sliceSize
	}
	if emitSize != 0 {
		cfg.EmitterSizeM = emitSize
	}
	if ampRes >= 0 {
		cfg.AmpRes = ampRes
	}
	if phaseRes >= 0 {
		cfg.PhaseRes = phaseRes
	}
	if freq != 0 {
		cfg.FrequencyHz = freq
	}
	if soundSpeed != 0 {
		cfg.SoundSpeedMS = soundSpeed
	}
}
