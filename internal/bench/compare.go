package bench

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/chuanjin/toonbench/internal/httpapi"
	"github.com/chuanjin/toonbench/internal/parser"
	"github.com/cockroachdb/errors"
)

// Summary compares one JSON run against one TOON run.
type Summary struct {
	JSONMs       float64 `json:"jsonMs"`
	TOONMs       float64 `json:"toonMs"`
	DifferenceMs float64 `json:"differenceMs"`
	Faster       string  `json:"faster"`
	JSONBytes    int     `json:"jsonBytes"`
	TOONBytes    int     `json:"toonBytes"`
}

// Summarize builds a Summary. JSON is reported faster only when strictly
// faster; ties go to TOON.
func Summarize(jsonMs, toonMs float64, jsonBytes, toonBytes int) Summary {
	faster := "TOON"
	if jsonMs < toonMs {
		faster = "JSON"
	}
	return Summary{
		JSONMs:       jsonMs,
		TOONMs:       toonMs,
		DifferenceMs: math.Abs(jsonMs - toonMs),
		Faster:       faster,
		JSONBytes:    jsonBytes,
		TOONBytes:    toonBytes,
	}
}

// ParseProcessingTime reads a "0.0123 ms" duration back into milliseconds.
func ParseProcessingTime(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "ms")), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "processing time %q", s)
	}
	return v, nil
}

// Compare summarizes two server responses.
func Compare(jsonResp, toonResp httpapi.ParseResponse) (Summary, error) {
	jsonMs, err := ParseProcessingTime(jsonResp.ProcessingTime)
	if err != nil {
		return Summary{}, err
	}
	toonMs, err := ParseProcessingTime(toonResp.ProcessingTime)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(jsonMs, toonMs, len(jsonResp.Input), len(toonResp.Input)), nil
}

// Report is the outcome of a benchmark run.
type Report struct {
	Iterations int
	JSON       httpapi.ParseResponse
	TOON       httpapi.ParseResponse
	Summary    Summary
}

// Run parses each payload iterations times and averages the server-side
// processing times. The last response of each format is kept in the report.
func Run(ctx context.Context, c *Client, jsonPayload, toonPayload string, iterations int) (Report, error) {
	if iterations < 1 {
		iterations = 1
	}
	r := Report{Iterations: iterations}

	var jsonTotal, toonTotal float64
	for i := 0; i < iterations; i++ {
		var err error
		if r.JSON, err = c.Parse(ctx, parser.FormatJSON, jsonPayload); err != nil {
			return r, errors.Wrap(err, "parse json")
		}
		if r.TOON, err = c.Parse(ctx, parser.FormatTOON, toonPayload); err != nil {
			return r, errors.Wrap(err, "parse toon")
		}

		s, err := Compare(r.JSON, r.TOON)
		if err != nil {
			return r, err
		}
		jsonTotal += s.JSONMs
		toonTotal += s.TOONMs
	}

	n := float64(iterations)
	r.Summary = Summarize(jsonTotal/n, toonTotal/n, len(jsonPayload), len(toonPayload))
	return r, nil
}
