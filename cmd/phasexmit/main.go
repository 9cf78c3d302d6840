// Command phasexmit replays previously solved phases (a CSV produced
// by phasesolve --out) over a serial link, without re-running the
// solver. Flag/logging style follows cmd/direwolf/main.go.
package main

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/doismellburning/phasefield/internal/transmit"
)

func main() {
	var (
		port     = pflag.StringP("port", "p", "", "Serial port to transmit on.")
		baud     = pflag.Int("baud", 9600, "Baud rate.")
		phaseRes = pflag.Int("phase-res", 32, "Phase resolution the CSV's phase values were solved with.")
		input    = pflag.StringP("in", "i", "", "Input CSV path (stdin if empty).")
		debug    = pflag.Bool("debug", false, "Verbose logging.")
	)
	pflag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *port == "" {
		log.Fatal("a --port is required")
	}

	r := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal("opening input", "err", err)
		}
		defer f.Close()
		r = f
	}

	p, err := transmit.Open(*port, *baud)
	if err != nil {
		log.Fatal("opening serial port", "port", *port, "err", err)
	}
	defer p.Close()

	n, err := replay(r, p, *phaseRes)
	if err != nil {
		log.Fatal("replaying phases", "err", err)
	}
	log.Info("transmission complete", "frames sent", n)
}

// replay reads rows written by phasesolve's writeResults (index,
// amps..., phases...) and sends each row's second half (the phases)
// as one framed transmission. It trusts the row layout rather than
// re-deriving amp/phase counts, since phasesolve always writes
// n_emitters amps followed by n_emitters phases.
func replay(r io.Reader, p *transmit.Port, phaseRes int) (int, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	sent := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return sent, nil
		}
		if err != nil {
			return sent, err
		}
		if len(row) < 2 {
			continue
		}

		values := row[1:]
		half := len(values) / 2
		phases := make([]float64, half)
		for i, s := range values[half:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return sent, err
			}
			phases[i] = v
		}

		if err := transmit.SendPhases(p, phases, phaseRes); err != nil {
			return sent, err
		}
		sent++
	}
}
