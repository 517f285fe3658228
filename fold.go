package fixedrecord

import (
	"strings"
	"unicode"
)

// diacritics lists, for each base letter, the accented letters that fold to it.
var diacritics = map[rune]string{
	'a': "ÀÁÂÃÄÅàáâãäåĀāąĄ",
	'c': "ÇçćĆčČ",
	'd': "đĐďĎ",
	'e': "ÈÉÊËèéêëěĚĒēęĘ",
	'i': "ÌÍÎÏìíîïĪī",
	'l': "łŁ",
	'n': "ÑñňŇńŃ",
	'o': "ÒÓÔÕÖØòóôõöøŌō",
	'r': "řŘ",
	's': "ŠšśŚ",
	't': "ťŤ",
	'u': "ÙÚÛÜùúûüůŮŪū",
	'y': "ŸÿýÝ",
	'z': "ŽžżŻźŹ",
}

// foldTable maps every accented letter to its case-preserved base letter.
var foldTable = buildFoldTable()

func buildFoldTable() map[rune]rune {
	t := make(map[rune]rune)
	for base, from := range diacritics {
		for _, r := range from {
			if unicode.IsUpper(r) {
				t[r] = unicode.ToUpper(base)
			} else {
				t[r] = base
			}
		}
	}
	return t
}

// Fold replaces accented Latin letters in s with their closest unaccented
// ASCII letter, preserving case. Other characters are left untouched.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if to, ok := foldTable[r]; ok {
			return to
		}
		return r
	}, s)
}
