package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var ordinalWords = map[string]int{
	"un": 1, "une": 1, "premier": 1, "première": 1, "1er": 1, "1re": 1, "1ère": 1,
	"deux": 2, "deuxième": 2, "second": 2, "seconde": 2,
	"trois": 3, "troisième": 3,
	"quatre": 4, "quatrième": 4,
	"cinq": 5, "cinquième": 5,
	"six": 6, "sixième": 6,
	"sept": 7, "septième": 7,
	"huit": 8, "huitième": 8,
	"neuf": 9, "neuvième": 9,
	"dix": 10, "dixième": 10,
	"onze": 11, "onzième": 11,
	"douze": 12, "douzième": 12,
	"dernier": -1, "dernière": -1,
	"avant-dernier": -2, "avant-dernière": -2,
}

var monthNames = map[string]int{
	"janvier": 1, "février": 2, "mars": 3, "avril": 4, "mai": 5, "juin": 6,
	"juillet": 7, "août": 8, "septembre": 9, "octobre": 10, "novembre": 11, "décembre": 12,
}

// Longest first, so that "quater" is never read as "ter".
var multiplicativeAdverbs = []string{
	"quaterdecies", "quatervicies", "quindecies", "septdecies", "octodecies",
	"novodecies", "duodecies", "terdecies", "sexdecies", "undecies", "duovicies",
	"tervicies", "quinvicies", "septvicies", "quinquies", "unvicies", "sexvicies",
	"septies", "novies", "decies", "vicies", "quater", "sexies", "octies",
	"bis", "ter",
}

var (
	// "2e", "3ème", "1er"
	ordinalDigitsPattern = regexp.MustCompile(`^(\d+)(?:e|è|ème|eme|er|re|ère)$`)
	// "IV", "Ier" in references; markers only use the short alphabet below
	romanPattern       = regexp.MustCompile(`^([IVXLCDM]+)(?:er)?$`)
	romanMarkerPattern = regexp.MustCompile(`^[IVX]+$`)
	// "3°"
	header2NumberPattern = regexp.MustCompile(`^(\d+)°$`)
	// "a", "b" as lettered segment markers
	letterPattern = regexp.MustCompile(`^[a-z]+$`)
	// "123", "123-4", "123-4-1"
	articleNumberPattern = regexp.MustCompile(`^\d+(?:-\d+)*`)
	// code article prefixes: "L. 123-4", "R. 12", "LO. 1"
	codePrefixPattern = regexp.MustCompile(`^(?:L|R|D|A|LO)$`)
	numberPattern     = regexp.MustCompile(`^\d+$`)
	yearPattern       = regexp.MustCompile(`^\d{4}$`)
	capitalLetter     = regexp.MustCompile(`^[A-Z]$`)
)

// ordinal reads "deuxième", "second", "2e", "dernier"... Negative values
// count from the end.
func ordinal(word string) (int, bool) {
	lowered := strings.ToLower(word)
	if value, known := ordinalWords[lowered]; known {
		return value, true
	}
	if digitsMatch := ordinalDigitsPattern.FindStringSubmatch(lowered); digitsMatch != nil {
		value, convErr := strconv.Atoi(digitsMatch[1])
		if convErr == nil && value > 0 {
			return value, true
		}
	}
	return 0, false
}

func isOrdinal(word string) bool {
	_, matched := ordinal(word)
	return matched
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

func parseRomanDigits(digits string) int {
	total := 0
	for digitIndex := 0; digitIndex < len(digits); digitIndex++ {
		value := romanValues[digits[digitIndex]]
		if digitIndex+1 < len(digits) && romanValues[digits[digitIndex+1]] > value {
			total -= value
		} else {
			total += value
		}
	}
	return total
}

// roman reads an uppercase roman numeral, optionally suffixed "er" ("Ier").
func roman(word string) (int, bool) {
	romanMatch := romanPattern.FindStringSubmatch(word)
	if romanMatch == nil {
		return 0, false
	}
	value := parseRomanDigits(romanMatch[1])
	return value, value > 0
}

// romanMarker reads the roman numerals used as header-1 markers. The
// alphabet is limited to I, V and X so that "M." or "L." at the start of a
// line is not taken for a segment.
func romanMarker(word string) (int, bool) {
	if !romanMarkerPattern.MatchString(word) {
		return 0, false
	}
	value := parseRomanDigits(word)
	return value, value > 0
}

func header2Number(word string) (int, bool) {
	numberMatch := header2NumberPattern.FindStringSubmatch(word)
	if numberMatch == nil {
		return 0, false
	}
	value, convErr := strconv.Atoi(numberMatch[1])
	return value, convErr == nil
}

// letterOrder maps "a" to 1, "b" to 2... using the first letter.
func letterOrder(word string) (int, bool) {
	if !letterPattern.MatchString(word) {
		return 0, false
	}
	return int(word[0]-'a') + 1, true
}

func number(word string) (int, bool) {
	if !numberPattern.MatchString(word) {
		return 0, false
	}
	value, convErr := strconv.Atoi(word)
	return value, convErr == nil
}

func multiplicativeAdverb(word string) (string, bool) {
	lowered := strings.ToLower(word)
	for _, adverb := range multiplicativeAdverbs {
		if lowered == adverb {
			return adverb, true
		}
	}
	return "", false
}

// lawDate formats "5 juillet 2010" as "2010-07-05".
func lawDate(day, month, year string) (string, bool) {
	dayValue, dayOK := number(day)
	if !dayOK {
		dayValue, dayOK = ordinal(day)
	}
	monthValue, monthOK := monthNames[strings.ToLower(month)]
	if !dayOK || !monthOK || dayValue < 1 || dayValue > 31 || !yearPattern.MatchString(year) {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", year, monthValue, dayValue), true
}

func hasWordCharacter(text string) bool {
	for _, character := range text {
		if unicode.IsLetter(character) || unicode.IsDigit(character) {
			return true
		}
	}
	return false
}

func startsUppercase(text string) bool {
	for _, character := range text {
		return unicode.IsUpper(character)
	}
	return false
}

func isOneOf(word string, candidates ...string) bool {
	for _, candidate := range candidates {
		if word == candidate {
			return true
		}
	}
	return false
}

func isAlineaWord(word string) bool {
	return strings.HasPrefix(word, "alinéa")
}

func isSentenceWord(word string) bool {
	return strings.HasPrefix(word, "phrase")
}

func isWordsWord(word string) bool {
	return strings.HasPrefix(word, "mot")
}

func isRedactionVerb(word string) bool {
	return strings.HasPrefix(word, "modifié") || strings.HasPrefix(word, "rédigé")
}
