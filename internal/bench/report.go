package bench

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chuanjin/toonbench/internal/httpapi"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the payloads, both results and the comparison to w.
func Render(w io.Writer, r Report) error {
	for _, resp := range []httpapi.ParseResponse{r.JSON, r.TOON} {
		fmt.Fprintf(w, "%s TEST\nSent: %s\n", resp.Format, resp.Input)
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Result:\n%s\n\n", out)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Format", "Success", "Time", "Size"})
	tw.AppendRow(table.Row{"JSON", r.JSON.Success, formatMs(r.Summary.JSONMs), formatBytes(r.Summary.JSONBytes)})
	tw.AppendRow(table.Row{"TOON", r.TOON.Success, formatMs(r.Summary.TOONMs), formatBytes(r.Summary.TOONBytes)})
	tw.AppendFooter(table.Row{"Difference", "", formatMs(r.Summary.DifferenceMs), ""})
	tw.Render()

	verdict := color.New(color.FgGreen, color.Bold)
	_, err := verdict.Fprintf(w, "%s was faster (mean of %d runs)\n", r.Summary.Faster, r.Iterations)
	return err
}

func formatMs(ms float64) string {
	return fmt.Sprintf("%.4f ms", ms)
}

func formatBytes(n int) string {
	return fmt.Sprintf("%d bytes", n)
}
