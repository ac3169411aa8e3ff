package script

import "strings"

// Lexical fingerprints per language: pronouns, copulas, and
// interrogatives that distinguish languages sharing one script.
var fingerprints = map[string][]string{
	"hi":  {"है", "हैं", "हूं", "हो", "कैसे", "क्या", "कहाँ", "कब", "क्यों", "मैं", "तुम", "आप"},
	"mr":  {"आहे", "आहोत", "आहो", "कसे", "काय", "कुठे", "कधी", "का", "मी", "तू", "तुम्ही"},
	"ne":  {"छु", "छौं", "छ", "कसरी", "के", "कहाँ", "कहिले", "किन", "म", "तपाईं", "तिमी"},
	"sa":  {"अस्ति", "सन्ति", "अस्मि", "भवान्", "कथं", "किम्", "कुत्र", "कदा", "किमर्थम्", "अहम्", "त्वम्"},
	"brx": {"आसो", "आसोनि", "कसे", "मा", "कुंदा", "मानो", "आं", "नों", "बिसोर", "बांगो", "आजि"},
	"doi": {"हां", "हो", "है", "कैसे", "क्या", "कहाँ", "कब", "क्यों", "मैं", "तुसी", "तुहाडे", "डोगरी"},
	"mai": {"छी", "छथि", "कहाँ", "का", "कहिले", "किन", "हम", "अहाँ", "तोहर", "मैथिली", "बिहार"},
	"kok": {"आसां", "आसात", "कशें", "काय", "कुडे", "कदी", "का", "हांव", "तुमी", "तुमचे", "कोंकणी"},
	"sat": {"आसो", "आसोनि", "कसे", "मा", "कुंदा", "मानो", "आं", "नों", "बिसोर", "संताली", "झारखंड"},
	"bn":  {"আছি", "আছেন", "আছো", "কেমন", "কী", "কোথায়", "কখন", "কেন", "আমি", "তুমি", "আপনি"},
	"as":  {"আছোঁ", "আছে", "আছা", "কেনেকৈ", "কি", "ক'ত", "কেতিয়া", "কিয়", "মই", "আপুনি"},
	"mni": {"ঈগা", "কদাৱা", "নুংগাই", "নুংগাইদা"},
	"ur":  {"ہوں", "ہیں", "ہو", "کیسے", "کیا", "کہاں", "کب", "کیوں", "میں", "تم", "آپ"},
	"ks":  {"چھو", "کیہہ", "تہِ"},
	"sd":  {"آهيان", "آهيو", "ڪيئن", "ڪهڙو", "ڪٿي", "ڪڏهن", "مان", "توهان"},
}

// Region and self-name words used to break near-ties between close
// Devanagari languages.
var tiebreakers = map[string][]string{
	"brx": {"बांगो", "आजि", "बोडो", "असम"},
	"sat": {"संताली", "झारखंड", "संथाल", "ओडिशा"},
	"doi": {"डोगरी", "जम्मू", "कश्मीर"},
	"mai": {"मैथिली", "बिहार", "नेपाल"},
	"kok": {"कोंकणी", "गोवा", "कर्नाटक"},
}

var familyDefaults = map[string]string{
	"devanagari": "hi",
	"bengali":    "bn",
	"arabic":     "ur",
}

// Disambiguate picks the most likely language among the candidates of a
// script family by counting fingerprint occurrences. Longer fingerprints
// count double. Ties and fingerprint-free text fall back to the family
// default language.
func Disambiguate(text, familyName string) string {
	candidates := Candidates(familyName)
	if len(candidates) == 0 {
		return ""
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	bestLang := ""
	bestScore := 0
	for _, lang := range candidates {
		score := 0
		for _, mark := range fingerprints[lang] {
			if strings.Contains(text, mark) {
				if len([]rune(mark)) > 3 {
					score += 2
				} else {
					score++
				}
			}
		}
		if score > bestScore {
			bestLang = lang
			bestScore = score
		}
	}

	if bestScore > 1 {
		return bestLang
	}
	if bestScore == 1 {
		// A single weak hit is not decisive between close languages;
		// check region words before accepting it.
		for _, lang := range candidates {
			for _, mark := range tiebreakers[lang] {
				if strings.Contains(text, mark) {
					return lang
				}
			}
		}
		return bestLang
	}

	if fallback, ok := familyDefaults[familyName]; ok {
		return fallback
	}
	return candidates[0]
}
