package services

import (
	"sort"

	"campsite-backend/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortPitches orders pitches by number with Italian collation, then by suffix,
// so "002" < "010" < "010a" < "010b".
func sortPitches(pitches []models.Pitch) {
	// a Collator is not safe for concurrent use
	col := collate.New(language.Italian)
	sort.SliceStable(pitches, func(i, j int) bool {
		if c := col.CompareString(pitches[i].Number, pitches[j].Number); c != 0 {
			return c < 0
		}
		return pitches[i].Suffix < pitches[j].Suffix
	})
}
