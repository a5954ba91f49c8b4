package features

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/textnorm"
)

// LexicalDiversityArgs holds the lexical diversity feature set's parameters.
type LexicalDiversityArgs struct {
	// Windows are the MATTR window sizes. Empty means the standard
	// 10/25/50 set.
	Windows []int `mapstructure:"windows"`
}

type lexicalDiversityExtractor struct {
	name    string
	windows []int
}

// NewLexicalDiversityExtractor returns the MATTR + Honoré's statistic
// feature set.
func NewLexicalDiversityExtractor(name string, args LexicalDiversityArgs) Extractor {
	windows := args.Windows
	if len(windows) == 0 {
		windows = []int{10, 25, 50}
	}
	return &lexicalDiversityExtractor{name: name, windows: windows}
}

func (l *lexicalDiversityExtractor) Name() string { return l.name }

func (l *lexicalDiversityExtractor) Extract(hyp models.Hypothesis) (models.FeatureVector, error) {
	// Non-verbal markers are not vocabulary.
	var words []string
	for _, tt := range hyp {
		for _, tok := range tt.Tokens {
			if tok == "" || textnorm.IsNonVerbal(tok) {
				continue
			}
			words = append(words, tok)
		}
	}

	fv := models.FeatureVector{}
	for _, window := range l.windows {
		fv[fmt.Sprintf("MATTR_%d", window)] = movingAverageTTR(words, window)
	}
	fv["HS"] = honoresStatistic(words)
	return fv, nil
}

// movingAverageTTR computes the mean type-token ratio over every window of
// the given size. A window larger than the transcript is clamped to the
// transcript length; an empty transcript has no defined value.
func movingAverageTTR(words []string, window int) float64 {
	if len(words) == 0 {
		return math.NaN()
	}
	if len(words) < window {
		slog.Warn("MATTR window larger than transcript, clamping",
			"window", window, "words", len(words))
		window = len(words)
	}

	counts := make(map[string]int, window)
	for i := 0; i < window; i++ {
		counts[words[i]]++
	}

	ttrs := []float64{float64(len(counts)) / float64(window)}
	for i := 1; i+window <= len(words); i++ {
		leaving := words[i-1]
		counts[leaving]--
		if counts[leaving] == 0 {
			delete(counts, leaving)
		}
		counts[words[i+window-1]]++
		ttrs = append(ttrs, float64(len(counts))/float64(window))
	}
	return stat.Mean(ttrs, nil)
}

// honoresStatistic emphasizes words used exactly once:
// HS = 100 * log(N / (1 - V1/V)), with a small epsilon so the statistic
// stays defined when every unique word is a singleton.
func honoresStatistic(words []string) float64 {
	total := len(words)
	if total == 0 {
		return math.NaN()
	}

	counts := make(map[string]int, total)
	for _, w := range words {
		counts[w]++
	}
	unique := len(counts)
	singletons := 0
	for _, c := range counts {
		if c == 1 {
			singletons++
		}
	}

	const epsilon = 1e-5
	return 100 * math.Log(float64(total)/(1-float64(singletons)/(float64(unique)+epsilon)))
}
