package citation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"paperbrief/internal/models"
	"paperbrief/internal/util"
)

// Searcher is the lookup backend. *CrossrefClient implements it.
type Searcher interface {
	Search(ctx context.Context, query string, rows int) ([]Work, error)
}

// Resolver picks the best bibliographic match for a summary. Lookup failures
// and weak matches both yield an unresolved reference; resolution never fails
// the caller.
type Resolver struct {
	searcher  Searcher
	threshold float64
	log       zerolog.Logger
}

func NewResolver(s Searcher, threshold float64, log zerolog.Logger) *Resolver {
	if threshold <= 0 {
		threshold = 0.5
	}
	return &Resolver{searcher: s, threshold: threshold, log: log}
}

// Resolve queries the backend with the summary title and authors, scores each
// candidate by title similarity, and accepts the best candidate at or above
// the threshold.
func (r *Resolver) Resolve(ctx context.Context, sum models.SummaryResult) models.Reference {
	title := strings.TrimSpace(sum.Title)
	if title == "" {
		return models.UnresolvedReference()
	}
	query := title
	if len(sum.Authors) > 0 {
		query = title + " " + strings.Join(sum.Authors, " ")
	}

	works, err := r.searcher.Search(ctx, query, 5)
	if err != nil {
		r.log.Warn().Err(err).Msg("citation lookup failed")
		return models.UnresolvedReference()
	}

	var best Work
	bestScore := 0.0
	for _, w := range works {
		if score := util.TitleSimilarity(title, w.Title); score > bestScore {
			best, bestScore = w, score
		}
	}
	if bestScore < r.threshold {
		r.log.Debug().
			Float64("best_score", bestScore).
			Float64("threshold", r.threshold).
			Int("candidates", len(works)).
			Msg("no citation match above threshold")
		return models.UnresolvedReference()
	}

	r.log.Debug().
		Str("doi", best.DOI).
		Float64("score", bestScore).
		Msg("citation resolved")
	return models.ResolvedReference(FormatCitation(best), bestScore)
}
