package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/selimozcann/RedirectToolkit/internal/model"
)

// CSVHeader mirrors the column layout of ffuf's csv output so both probe
// backends produce files the batch pipeline reads the same way.
var CSVHeader = []string{
	"FUZZ", "url", "redirectlocation", "position", "status_code",
	"content_length", "content_words", "content_lines", "content_type",
	"duration", "resultfile",
}

// WriteCSV writes the alive results to w, header first. It returns the
// number of data rows written.
func WriteCSV(w io.Writer, results []model.Result) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, err
	}
	n := 0
	for _, res := range results {
		if !res.Alive {
			continue
		}
		last := res.Last()
		redirect := ""
		if len(res.Chain) > 1 {
			redirect = last.URL
		}
		row := []string{
			res.Payload,
			res.Target,
			redirect,
			strconv.Itoa(res.Position),
			strconv.Itoa(last.Status),
			strconv.FormatInt(last.Size, 10),
			"", "", "",
			strconv.FormatInt(res.DurationMs*int64(time.Millisecond), 10),
			"",
		}
		if err := cw.Write(row); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}
