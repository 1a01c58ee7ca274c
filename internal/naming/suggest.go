package naming

import "sort"

// minSimilarity is the lowest similarity a suggestion may have.
const minSimilarity = 0.5

// Distance returns the edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	// row[j] is the distance between the current prefix of ra and rb[:j].
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(rb); j++ {
			above := row[j]

			sub := diag
			if ra[i-1] != rb[j-1] {
				sub++
			}

			row[j] = min(above+1, row[j-1]+1, sub)
			diag = above
		}
	}

	return row[len(rb)]
}

// Similarity maps Distance to [0, 1], where 1 means equal.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}

// Suggest returns up to n candidates closest to name, best first.
// Candidates are compared by their normal form, so "userID" is close to
// "UserId". Candidates scoring below half similarity are dropped.
func Suggest(name string, candidates []string, n int) []string {
	type scored struct {
		name  string
		score float64
	}

	target := ToNormalIdent(name)

	var ranked []scored

	for _, c := range candidates {
		if score := Similarity(target, ToNormalIdent(c)); score >= minSimilarity {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	out := make([]string, 0, min(n, len(ranked)))
	for _, r := range ranked[:min(n, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
