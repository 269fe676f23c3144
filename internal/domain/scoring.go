package domain

import (
	"math"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Whole label typed exactly (huge boost)
	ScoreExactLabelBonus = 200.0

	// Usage weight (usage counter contributes to final score)
	ScoreUsageWeight = 0.1
)

// Candidate represents a link candidate with its match score
type Candidate struct {
	Link         Link
	Position     int     // Index of the link in the document
	LexicalScore float64 // Score from fuzzy matching
	UsageScore   float64 // Score from usage counters
	TotalScore   float64 // Combined score
}

// Score calculates the match score for a link against a query.
// Every query fragment must match some link fragment, otherwise the score is 0.
func Score(query *Query, link Link) float64 {
	if query == nil || len(query.Fragments) == 0 {
		return 0.0
	}

	linkFragments := LinkFragments(link)
	if len(linkFragments) == 0 {
		return 0.0
	}

	whole := normalizeFragment(query.Raw)
	if whole != "" && (whole == normalizeFragment(link.Label()) || whole == normalizeFragment(link.Name)) {
		return ScoreExactMatch + ScoreExactLabelBonus
	}

	var totalScore float64
	for _, qFrag := range query.Fragments {
		best := 0.0
		for i, lFrag := range linkFragments {
			if score := scoreFragment(qFrag, lFrag, i); score > best {
				best = score
			}
		}
		if best == 0.0 {
			return 0.0
		}
		totalScore += best
	}

	return totalScore
}

// scoreFragment scores a single query fragment against a link fragment
func scoreFragment(queryFrag, linkFrag string, position int) float64 {
	queryFrag = normalizeFragment(queryFrag)
	linkFrag = normalizeFragment(linkFrag)

	if queryFrag == "" || linkFrag == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == linkFrag {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(linkFrag, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	// Substring match
	if index := strings.Index(linkFrag, queryFrag); index >= 0 {
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(linkFrag)))
		return ScoreSubstringMatch + substringBonus
	}

	// Fuzzy match
	similarity := calculateSimilarity(queryFrag, linkFrag)
	if similarity > 0.5 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity returns the ratio of query characters found in the target
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	matches := 0
	total := 0
	for _, c := range s1 {
		total++
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(total)
}

// RankLinks ranks links by combining lexical and usage scores.
// usage may be nil; it is keyed by Link.ID().
// Ties keep document order.
func RankLinks(query *Query, links []Link, usage map[string]int64) []*Candidate {
	candidates := make([]*Candidate, 0, len(links))

	for i, link := range links {
		lexicalScore := Score(query, link)
		if lexicalScore == 0.0 {
			continue
		}

		// Logarithmic to prevent dominance
		usageScore := 0.0
		if count := usage[link.ID()]; count > 0 {
			usageScore = math.Log10(float64(count)+1) * ScoreUsageWeight * 100
		}

		candidates = append(candidates, &Candidate{
			Link:         link,
			Position:     i,
			LexicalScore: lexicalScore,
			UsageScore:   usageScore,
			TotalScore:   lexicalScore + usageScore,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalScore > candidates[j].TotalScore
	})

	return candidates
}

// FindBestLink returns the best matching link for a query
func FindBestLink(query *Query, links []Link, usage map[string]int64) (Link, bool) {
	candidates := RankLinks(query, links, usage)
	if len(candidates) == 0 {
		return Link{}, false
	}
	return candidates[0].Link, true
}
