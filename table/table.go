// Package table reads language models from plain text feature tables.
//
// A feature table names the languages, optionally their prior
// probabilities, and then lists one byte n-gram per line together with its
// probability under every language:
//
//	# comment
//	languages en fr
//	prior 0.5 0.5
//	ab 0.9 0.1
//	"a b" 0.2 0.8
//
// An n-gram containing blanks, quotes or non-printable bytes, or one that
// starts with '#' or reads like a keyword, is written as a Go string
// literal. Without a prior line the priors are uniform. A
// probability of 0 is stored as log 0 and rules the language out whenever
// the n-gram occurs.
package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/langid/compile"
	"github.com/npillmayer/langid/model"
)

// ErrSyntax is wrapped by every error about malformed table input.
var ErrSyntax = errors.New("table: syntax error")

// Reader streams the n-gram lines of a feature table.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	labels  []string
	prior   []float64 // log space
	pending string    // first n-gram line, read while looking for the header
	gram    []byte
	loglik  []float64
}

// NewReader reads the header of a feature table. The n-gram lines are
// then available through Next.
func NewReader(r io.Reader) (*Reader, error) {
	tr := &Reader{scanner: bufio.NewScanner(r)}
	for tr.scan() {
		line := strings.TrimSpace(tr.scanner.Text())
		fields := strings.Fields(line)
		switch fields[0] {
		case "languages":
			tr.labels = fields[1:]
			if len(tr.labels) == 0 {
				return nil, tr.syntax("no languages")
			}
		case "prior":
			if tr.labels == nil {
				return nil, tr.syntax("prior before languages")
			}
			p, err := tr.logValues(fields[1:], nil)
			if err != nil {
				return nil, err
			}
			tr.prior = p
		default:
			if tr.labels == nil {
				return nil, tr.syntax("n-gram before languages")
			}
			tr.pending = line
			return tr.withPrior(), nil
		}
	}
	if err := tr.scanner.Err(); err != nil {
		return nil, err
	}
	if tr.labels == nil {
		return nil, fmt.Errorf("%w: missing languages line", ErrSyntax)
	}
	return tr.withPrior(), nil
}

func (r *Reader) withPrior() *Reader {
	if r.prior == nil {
		r.prior = make([]float64, len(r.labels))
		for c := range r.prior {
			r.prior[c] = -math.Log(float64(len(r.labels)))
		}
	}
	return r
}

// Labels returns the language labels in class order.
func (r *Reader) Labels() []string {
	return r.labels
}

// LogPrior returns the natural log of the prior of every language.
func (r *Reader) LogPrior() []float64 {
	return r.prior
}

// Next returns the next n-gram with the natural log of its probability
// under every language. It returns io.EOF when exhausted.
// The returned slices are reused by subsequent calls.
func (r *Reader) Next() ([]byte, []float64, error) {
	line := r.pending
	r.pending = ""
	if line == "" {
		if !r.scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, nil, err
			}
			return nil, nil, io.EOF
		}
		line = r.scanner.Text()
	}
	if err := r.decodeFeatureLine(line); err != nil {
		return nil, nil, err
	}
	return r.gram, r.loglik, nil
}

// scan advances to the next line that is neither blank nor a comment.
func (r *Reader) scan() bool {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}

func (r *Reader) decodeFeatureLine(line string) error {
	line = strings.TrimSpace(line)
	var gram, rest string
	if strings.HasPrefix(line, `"`) {
		q, err := strconv.QuotedPrefix(line)
		if err != nil {
			return r.syntax("bad n-gram literal")
		}
		gram, _ = strconv.Unquote(q)
		rest = line[len(q):]
	} else {
		gram = line
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			gram, rest = line[:i], line[i:]
		}
	}
	if gram == "" {
		return r.syntax("empty n-gram")
	}
	loglik, err := r.logValues(strings.Fields(rest), r.loglik)
	if err != nil {
		return err
	}
	r.gram = append(r.gram[:0], gram...)
	r.loglik = loglik
	return nil
}

// logValues parses one probability per language and appends their logs to
// buf[:0].
func (r *Reader) logValues(fields []string, buf []float64) ([]float64, error) {
	if len(fields) != len(r.labels) {
		return nil, r.syntax(fmt.Sprintf("%d values for %d languages", len(fields), len(r.labels)))
	}
	values := buf[:0]
	for _, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil || p < 0 || p > 1 {
			return nil, r.syntax(fmt.Sprintf("%q is not a probability", f))
		}
		values = append(values, math.Log(p))
	}
	return values, nil
}

func (r *Reader) syntax(msg string) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, r.line, msg)
}

// Compile reads a complete feature table and compiles it into a model.
func Compile(input io.Reader) (*model.Model, error) {
	r, err := NewReader(input)
	if err != nil {
		return nil, err
	}
	b, err := compile.New(r.Labels(), r.LogPrior())
	if err != nil {
		return nil, err
	}
	for {
		gram, loglik, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, err := b.AddFeature(gram, loglik); err != nil {
			return nil, fmt.Errorf("table: line %d: %w", r.line, err)
		}
	}
	return b.Compile()
}
