package arpa

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	maxLineSize = 1 << 20
	// Declared counts come from the file; don't trust them for allocation.
	maxPrealloc = 1 << 16
)

// Model is the parsed content of an ARPA file.
type Model struct {
	// Counts[i] is the declared number of (i+1)-grams.
	Counts []uint64 `json:"counts"`
	// Lower[i] holds the (i+1)-grams for every order below the highest.
	Lower [][]ProbBackoffNgram `json:"lower"`
	// Highest holds the n-grams of the highest order.
	Highest []ProbNgram `json:"highest"`
}

// Order is the highest n-gram order.
func (m *Model) Order() int {
	return len(m.Counts)
}

// NGrams returns the entries of order n, 1 <= n < Order().
func (m *Model) NGrams(n int) []ProbBackoffNgram {
	if n < 1 || n > len(m.Lower) {
		return nil
	}
	return m.Lower[n-1]
}

// Unigrams returns the 1-grams. In an order-1 model they are the highest
// order and carry no backoff, so they are returned with a zero backoff.
func (m *Model) Unigrams() []ProbBackoffNgram {
	if m.Order() != 1 {
		return m.NGrams(1)
	}
	out := make([]ProbBackoffNgram, len(m.Highest))
	for i, e := range m.Highest {
		out[i] = ProbBackoffNgram{ProbBackoff: ProbBackoff{LogProb: e.Prob}, NGram: e.NGram}
	}
	return out
}

// ParseFile parses the ARPA file at path.
func ParseFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads a complete ARPA model from r.
//
// Text before the \data\ line is ignored, as is anything after \end\.
// Entries below the highest order may omit their backoff, which then reads
// as 0. Entries of the highest order must not carry one.
func Parse(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	p := &parser{sc: sc}
	return p.parse()
}

type parser struct {
	sc      *bufio.Scanner
	line    int
	pending *string
}

func (p *parser) next() (string, bool, error) {
	if p.pending != nil {
		s := *p.pending
		p.pending = nil
		return s, true, nil
	}
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", false, fmt.Errorf("arpa: read line %d: %w", p.line+1, err)
		}
		return "", false, nil
	}
	p.line++
	return strings.TrimSpace(p.sc.Text()), true, nil
}

func (p *parser) unread(s string) {
	p.pending = &s
}

// nextNonBlank skips empty lines.
func (p *parser) nextNonBlank() (string, bool, error) {
	for {
		s, ok, err := p.next()
		if err != nil || !ok || s != "" {
			return s, ok, err
		}
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() (*Model, error) {
	for {
		s, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.errorf(`missing \data\ header`)
		}
		if s == `\data\` {
			break
		}
	}

	counts, err := p.parseCounts()
	if err != nil {
		return nil, err
	}

	m := &Model{Counts: counts}
	order := len(counts)
	for n := 1; n <= order; n++ {
		s, ok, err := p.nextNonBlank()
		if err != nil {
			return nil, err
		}
		if want := fmt.Sprintf(`\%d-grams:`, n); !ok || s != want {
			return nil, p.errorf("expected %s, found %q", want, s)
		}
		if n < order {
			entries, err := p.parseLower(n, counts[n-1])
			if err != nil {
				return nil, err
			}
			m.Lower = append(m.Lower, entries)
		} else {
			entries, err := p.parseHighest(n, counts[n-1])
			if err != nil {
				return nil, err
			}
			m.Highest = entries
		}
	}

	s, ok, err := p.nextNonBlank()
	if err != nil {
		return nil, err
	}
	if !ok || s != `\end\` {
		return nil, p.errorf(`expected \end\, found %q`, s)
	}
	return m, nil
}

func (p *parser) parseCounts() ([]uint64, error) {
	var counts []uint64
	for {
		s, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if s == "" {
			if len(counts) == 0 {
				continue
			}
			break
		}
		if strings.HasPrefix(s, `\`) {
			p.unread(s)
			break
		}

		rest, found := strings.CutPrefix(s, "ngram ")
		if !found {
			return nil, p.errorf("expected ngram count, found %q", s)
		}
		nStr, cStr, found := strings.Cut(rest, "=")
		if !found {
			return nil, p.errorf("malformed ngram count %q", s)
		}
		n, err := strconv.Atoi(strings.TrimSpace(nStr))
		if err != nil {
			return nil, p.errorf("bad order in %q", s)
		}
		if n != len(counts)+1 {
			return nil, p.errorf("ngram counts out of order: got order %d, want %d", n, len(counts)+1)
		}
		c, err := strconv.ParseUint(strings.TrimSpace(cStr), 10, 64)
		if err != nil {
			return nil, p.errorf("bad count in %q", s)
		}
		counts = append(counts, c)
	}
	if len(counts) == 0 {
		return nil, p.errorf("no ngram counts after \\data\\")
	}
	return counts, nil
}

// entry reads one n-gram line of order n. hasBackoff reports whether a
// backoff column was present.
func (p *parser) entry(n int, count uint64, seen int) (prob float32, ngram string, backoff float32, hasBackoff bool, err error) {
	s, ok, err := p.nextNonBlank()
	if err != nil {
		return 0, "", 0, false, err
	}
	if !ok || strings.HasPrefix(s, `\`) {
		return 0, "", 0, false, p.errorf("expected %d %d-grams, found %d", count, n, seen)
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case n + 1:
	case n + 2:
		hasBackoff = true
	default:
		return 0, "", 0, false, p.errorf("%d-gram entry has %d fields: %q", n, len(fields), s)
	}

	prob, err = parseFloat(fields[0])
	if err != nil {
		return 0, "", 0, false, p.errorf("bad probability %q", fields[0])
	}
	if hasBackoff {
		backoff, err = parseFloat(fields[n+1])
		if err != nil {
			return 0, "", 0, false, p.errorf("bad backoff %q", fields[n+1])
		}
	}
	return prob, strings.Join(fields[1:n+1], " "), backoff, hasBackoff, nil
}

func (p *parser) parseLower(n int, count uint64) ([]ProbBackoffNgram, error) {
	out := make([]ProbBackoffNgram, 0, min(count, maxPrealloc))
	for i := uint64(0); i < count; i++ {
		prob, ngram, backoff, _, err := p.entry(n, count, len(out))
		if err != nil {
			return nil, err
		}
		out = append(out, NewProbBackoffNgram(prob, ngram, backoff))
	}
	return out, nil
}

func (p *parser) parseHighest(n int, count uint64) ([]ProbNgram, error) {
	out := make([]ProbNgram, 0, min(count, maxPrealloc))
	for i := uint64(0); i < count; i++ {
		prob, ngram, _, hasBackoff, err := p.entry(n, count, len(out))
		if err != nil {
			return nil, err
		}
		if hasBackoff {
			return nil, p.errorf("highest-order %d-gram %q has a backoff", n, ngram)
		}
		out = append(out, NewProbNgram(prob, ngram))
	}
	return out, nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}
