package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/npillmayer/langid"
)

// printer writes classification results as text or JSON lines.
type printer struct {
	w      io.Writer
	json   bool
	label  *color.Color
	high   *color.Color
	medium *color.Color
	low    *color.Color
}

func newPrinter(w io.Writer, format string, colored bool) *printer {
	p := &printer{
		w:      w,
		json:   format == "json",
		label:  color.New(color.FgCyan, color.Bold),
		high:   color.New(color.FgGreen),
		medium: color.New(color.FgYellow),
		low:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.label, p.high, p.medium, p.low} {
		if colored && !p.json {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) confidence(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	switch {
	case v >= 0.8:
		return p.high.Sprint(s)
	case v >= 0.5:
		return p.medium.Sprint(s)
	}
	return p.low.Sprint(s)
}

func (p *printer) result(lc langid.LanguageConfidence) error {
	if p.json {
		return json.NewEncoder(p.w).Encode(lc)
	}
	_, err := fmt.Fprintf(p.w, "%s\t%s\n", p.label.Sprint(lc.Language), p.confidence(lc.Confidence))
	return err
}

func (p *printer) ranking(r []langid.LanguageConfidence) error {
	if p.json {
		return json.NewEncoder(p.w).Encode(r)
	}
	for i, lc := range r {
		if _, err := fmt.Fprintf(p.w, "%2d. %s\t%s\n", i+1, p.label.Sprint(lc.Language), p.confidence(lc.Confidence)); err != nil {
			return err
		}
	}
	return nil
}

type lineResult struct {
	Line int `json:"line"`
	langid.LanguageConfidence
}

func (p *printer) line(n int, lc langid.LanguageConfidence) error {
	if p.json {
		return json.NewEncoder(p.w).Encode(lineResult{Line: n, LanguageConfidence: lc})
	}
	_, err := fmt.Fprintf(p.w, "%d\t%s\t%s\n", n, p.label.Sprint(lc.Language), p.confidence(lc.Confidence))
	return err
}
