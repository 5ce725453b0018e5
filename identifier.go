package versionpager

import (
	"math"

	"github.com/samber/lo"
)

// Table names and column families end up in SQL text, so they are limited to
// [A-Za-z0-9_].
var _identifierSymbols = append([]rune("_"), lo.AlphanumericCharset...)

func validIdentifier(name string) bool {
	return name != "" && lo.Every(_identifierSymbols, []rune(name))
}

// closestColumn returns the candidate with the smallest edit distance to input.
func closestColumn(input string, candidates []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, candidate := range candidates {
		dist := levenshtein([]rune(candidate), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = candidate
		}
	}

	return closest
}
