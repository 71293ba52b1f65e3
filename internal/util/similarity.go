package util

import "strings"

// TitleSimilarity scores how closely a candidate title matches a query title,
// as the fraction of the query's meaningful terms that also occur in the
// candidate. The score is in [0,1]; 1 means every query term was found.
func TitleSimilarity(query, candidate string) float64 {
	queryTerms := meaningfulTerms(query)
	if len(queryTerms) == 0 {
		return 0
	}
	candidateSet := map[string]struct{}{}
	for _, t := range meaningfulTerms(candidate) {
		candidateSet[t] = struct{}{}
	}
	hits := 0
	for _, t := range queryTerms {
		if _, ok := candidateSet[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTerms))
}

func meaningfulTerms(s string) []string {
	s = strings.ToLower(SanitizeText(s))
	fields := strings.Fields(s)
	stop := map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "to": {}, "of": {}, "in": {}, "on": {},
		"for": {}, "is": {}, "are": {}, "was": {}, "were": {}, "what": {}, "how": {}, "why": {},
		"which": {}, "that": {}, "this": {}, "these": {}, "those": {}, "with": {}, "from": {}, "across": {},
	}
	uniq := map[string]struct{}{}
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ",.;:!?()[]{}\"'`")
		if len(f) < 3 {
			continue
		}
		if _, ok := stop[f]; ok {
			continue
		}
		if _, ok := uniq[f]; ok {
			continue
		}
		uniq[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}
