package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fulldump/goconfig"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/telesync/align"
)

type Config struct {
	Input        string  `usage:"JSON lines file with one hit per line, - for stdin"`
	Output       string  `usage:"destination of the realigned hits, - for stdout"`
	Tolerance    float64 `usage:"max hit distance per coordinate to consider two hits correlated"`
	BadTriggers  int     `usage:"consecutive uncorrelated triggers that break the correlation"`
	SearchRadius int     `usage:"max offset, in hits, tried to restore the correlation"`
	GoodTriggers int     `usage:"consecutive correlated triggers needed to accept an offset"`
	Verbose      bool    `usage:"trace every alignment phase"`
}

// Record is one line of the input and output files. A missing or [0,0] hit
// is virtual.
type Record struct {
	Trigger    int64      `json:"trigger"`
	Ref        [2]float64 `json:"ref"`
	Hit        [2]float64 `json:"hit"`
	Correlated *bool      `json:"correlated,omitempty"`
}

func main() {

	p := align.DefaultParams()
	c := Config{
		Input:        "-",
		Output:       "-",
		Tolerance:    p.Tolerance,
		BadTriggers:  p.BadTriggers,
		SearchRadius: p.SearchRadius,
		GoodTriggers: p.GoodTriggers,
	}
	goconfig.Read(&c)

	logger := log.New(os.Stderr, "", 0)

	in := io.Reader(os.Stdin)
	if c.Input != "-" {
		f, err := os.Open(c.Input)
		if err != nil {
			logger.Fatalf("ERROR: open input: %s", err.Error())
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			logger.Fatalf("ERROR: create output: %s", err.Error())
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	result, err := realign(c, in, w, logger)
	if err != nil {
		logger.Fatalf("ERROR: %s", err.Error())
	}
	err = w.Flush()
	if err != nil {
		logger.Fatalf("ERROR: write output: %s", err.Error())
	}

	logger.Printf("%d fixes, %s", result.Fixes, result.Outcome)
	for _, fix := range result.Applied {
		logger.Printf("  index %d now reads from %d (%+d triggers)", fix.Ref, fix.Sec, fix.Offset)
	}
	if result.Outcome == align.GaveUp {
		logger.Printf("  hits from index %d on are uncorrelated", result.BreakAt)
	}
}

func readRecords(r io.Reader) ([]*Record, error) {

	records := []*Record{}

	d := jsontext.NewDecoder(r)
	for {
		if d.PeekKind() == 0 {
			_, err := d.ReadToken()
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("line %d: %w", len(records)+1, err)
		}

		record := &Record{}
		err := json2.UnmarshalDecode(d, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
}

func realign(c Config, r io.Reader, w io.Writer, logger *log.Logger) (align.Result, error) {

	records, err := readRecords(r)
	if err != nil {
		return align.Result{}, fmt.Errorf("read input: %w", err)
	}

	n := len(records)
	s := align.Streams{
		Triggers:   make([]int64, n),
		Reference:  make([]align.Hit, n),
		Secondary:  make([]align.Hit, n),
		Correlated: make([]bool, n),
	}
	for i, record := range records {
		s.Triggers[i] = record.Trigger
		s.Reference[i] = align.Hit{Column: record.Ref[0], Row: record.Ref[1]}
		s.Secondary[i] = align.Hit{Column: record.Hit[0], Row: record.Hit[1]}
		s.Correlated[i] = record.Correlated == nil || *record.Correlated
	}

	opts := []align.Option{}
	if c.Verbose {
		opts = append(opts, align.WithLogger(logger))
	}

	result, err := align.Align(s, align.Params{
		Tolerance:    c.Tolerance,
		BadTriggers:  c.BadTriggers,
		SearchRadius: c.SearchRadius,
		GoodTriggers: c.GoodTriggers,
	}, opts...)
	if err != nil {
		return result, err
	}

	e := jsontext.NewEncoder(w)
	for i, record := range records {
		correlated := s.Correlated[i]
		record.Hit = [2]float64{s.Secondary[i].Column, s.Secondary[i].Row}
		record.Correlated = &correlated
		err := json2.MarshalEncode(e, record)
		if err != nil {
			return result, fmt.Errorf("write record %d: %w", i, err)
		}
	}

	return result, nil
}
