package arpa

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileFixture(t *testing.T) {
	t.Parallel()

	m, err := ParseFile(filepath.Join("testdata", "lm.arpa"))
	require.NoError(t, err)

	require.Equal(t, 3, m.Order())
	require.Equal(t, []uint64{12, 13, 12}, m.Counts)
	require.Equal(t, fixtureUnigrams(), m.NGrams(1))
	require.Equal(t, fixtureBigrams(), m.NGrams(2))
	require.Equal(t, fixtureTrigrams(), m.Highest)
	require.Nil(t, m.NGrams(3))
	require.Nil(t, m.NGrams(0))

	for _, e := range m.NGrams(2) {
		assert.Equal(t, 2, e.NGram.Order())
	}
	for _, e := range m.Highest {
		assert.Equal(t, 3, e.NGram.Order())
	}
}

func TestParseFixtureScenario(t *testing.T) {
	t.Parallel()

	m, err := ParseFile(filepath.Join("testdata", "lm.arpa"))
	require.NoError(t, err)

	first := m.Highest[0]
	want := NewProbBackoffNgram(-0.21873854, "a a </s>", -0.0)
	got := NewProbBackoffNgram(first.Prob, first.NGram.Text, -0.0)
	require.Equal(t, want, got)
	require.NotEqual(t, NewProbBackoffNgram(-0.21873854, "a a </s>", -0.30103), got)
}

func TestParseMissingBackoffIsZero(t *testing.T) {
	t.Parallel()

	src := "\\data\\\nngram 1=2\nngram 2=1\n\n\\1-grams:\n-1.0\t<s>\n-0.5\t</s>\t-0.25\n\n\\2-grams:\n-0.1\t<s> </s>\n\n\\end\\\n"
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, []ProbBackoffNgram{
		NewProbBackoffNgram(-1.0, "<s>", 0),
		NewProbBackoffNgram(-0.5, "</s>", -0.25),
	}, m.NGrams(1))
	require.Equal(t, []ProbNgram{NewProbNgram(-0.1, "<s> </s>")}, m.Highest)
}

func TestParseUnigramModel(t *testing.T) {
	t.Parallel()

	src := "\\data\\\nngram 1=2\n\n\\1-grams:\n-0.3\ta\n-0.3\tb\n\n\\end\\\n"
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, m.Order())
	require.Empty(t, m.Lower)
	require.Equal(t, []ProbNgram{NewProbNgram(-0.3, "a"), NewProbNgram(-0.3, "b")}, m.Highest)
	require.Nil(t, m.NGrams(1))
	require.Equal(t, []ProbBackoffNgram{
		NewProbBackoffNgram(-0.3, "a", 0),
		NewProbBackoffNgram(-0.3, "b", 0),
	}, m.Unigrams())
}

func TestUnigramsOfFixture(t *testing.T) {
	t.Parallel()

	m, err := ParseFile(filepath.Join("testdata", "lm.arpa"))
	require.NoError(t, err)
	require.Equal(t, fixtureUnigrams(), m.Unigrams())
	require.Len(t, m.Unigrams(), int(m.Counts[0]))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{
			name: "no data header",
			src:  "ngram 1=1\n",
			line: 1,
			msg:  `missing \data\`,
		},
		{
			name: "no counts",
			src:  "\\data\\\n\\1-grams:\n",
			line: 2,
			msg:  "no ngram counts",
		},
		{
			name: "counts out of order",
			src:  "\\data\\\nngram 2=1\n",
			line: 2,
			msg:  "out of order",
		},
		{
			name: "bad count",
			src:  "\\data\\\nngram 1=x\n",
			line: 2,
			msg:  "bad count",
		},
		{
			name: "too few entries",
			src:  "\\data\\\nngram 1=3\n\n\\1-grams:\n-1\ta\n\n\\end\\\n",
			line: 7,
			msg:  "expected 3 1-grams, found 1",
		},
		{
			name: "wrong section",
			src:  "\\data\\\nngram 1=1\nngram 2=1\n\n\\2-grams:\n",
			line: 5,
			msg:  `expected \1-grams:`,
		},
		{
			name: "token count",
			src:  "\\data\\\nngram 1=1\nngram 2=1\n\n\\1-grams:\n-1\ta\n\n\\2-grams:\n-1\ta\n",
			line: 9,
			msg:  "2-gram entry has 2 fields",
		},
		{
			name: "bad probability",
			src:  "\\data\\\nngram 1=1\n\n\\1-grams:\nprob\ta\n",
			line: 5,
			msg:  "bad probability",
		},
		{
			name: "backoff on highest order",
			src:  "\\data\\\nngram 1=1\n\n\\1-grams:\n-1\ta\t-0.5\n",
			line: 5,
			msg:  "has a backoff",
		},
		{
			name: "missing end",
			src:  "\\data\\\nngram 1=1\n\n\\1-grams:\n-1\ta\n",
			line: 5,
			msg:  `expected \end\`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrSyntax), "not a syntax error: %v", err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.arpa"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.NotErrorIs(t, err, ErrSyntax)
}
