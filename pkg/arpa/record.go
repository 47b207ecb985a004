// Package arpa defines the records of the ARPA text language model format
// and a reader that produces them.
//
// An ARPA file lists, per order, one line per n-gram:
//
//	log10(p)	w1 ... wN	[log10(backoff)]
//
// Values are kept exactly as written; nothing here rescales them.
package arpa

import (
	"fmt"
	"strings"
)

// NGram is a whitespace-delimited token sequence such as "i have a".
type NGram struct {
	Text string
}

// MarshalText encodes the n-gram as its plain text.
func (n NGram) MarshalText() ([]byte, error) {
	return []byte(n.Text), nil
}

func (n *NGram) UnmarshalText(b []byte) error {
	n.Text = string(b)
	return nil
}

// NewNGram joins tokens with single spaces.
func NewNGram(tokens ...string) NGram {
	return NGram{Text: strings.Join(tokens, " ")}
}

// Order is the number of tokens.
func (n NGram) Order() int {
	return len(strings.Fields(n.Text))
}

// Tokens splits the sequence into words.
func (n NGram) Tokens() []string {
	return strings.Fields(n.Text)
}

func (n NGram) String() string {
	return fmt.Sprintf("NGram(%q)", n.Text)
}

// ProbBackoff pairs a log probability with a backoff weight.
type ProbBackoff struct {
	LogProb float32 `json:"log_prob"`
	Backoff float32 `json:"backoff"`
}

// NewProbBackoff returns the pair (logProb, backoff).
func NewProbBackoff(logProb, backoff float32) ProbBackoff {
	return ProbBackoff{LogProb: logProb, Backoff: backoff}
}

func (p ProbBackoff) String() string {
	return fmt.Sprintf("ProbBackoff{log_prob: %v, backoff: %v}", p.LogProb, p.Backoff)
}

// ProbNgram is an entry of the highest order, which carries no backoff.
type ProbNgram struct {
	Prob  float32 `json:"log_prob"`
	NGram NGram   `json:"ngram"`
}

// NewProbNgram returns a highest-order entry for the n-gram text.
func NewProbNgram(prob float32, ngram string) ProbNgram {
	return ProbNgram{Prob: prob, NGram: NGram{Text: ngram}}
}

func (p ProbNgram) String() string {
	return fmt.Sprintf("ProbNgram{prob: %v, ngram: %q}", p.Prob, p.NGram.Text)
}

// ProbBackoffNgram is an entry below the highest order.
type ProbBackoffNgram struct {
	ProbBackoff ProbBackoff `json:"prob_backoff"`
	NGram       NGram       `json:"ngram"`
}

// NewProbBackoffNgram returns a lower-order entry. Arguments follow the
// column order of an ARPA line.
func NewProbBackoffNgram(logProb float32, ngram string, backoff float32) ProbBackoffNgram {
	return ProbBackoffNgram{
		ProbBackoff: ProbBackoff{LogProb: logProb, Backoff: backoff},
		NGram:       NGram{Text: ngram},
	}
}

func (p ProbBackoffNgram) String() string {
	return fmt.Sprintf("ProbBackoffNgram{log_prob: %v, backoff: %v, ngram: %q}",
		p.ProbBackoff.LogProb, p.ProbBackoff.Backoff, p.NGram.Text)
}
