// Package lexicon is the last-resort phrase-table fallback. Lookup
// always succeeds; it is the floor of the fallback chain.
package lexicon

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MatchConfidence is reported when a phrase-table entry applies.
	MatchConfidence = 0.7
	// MissConfidence is reported when the text passes through unchanged.
	MissConfidence = 0.1
)

// Result is one emergency lookup outcome.
type Result struct {
	Text       string
	Confidence float64
	Matched    bool
}

// Fixed bilingual phrase tables keyed by "src_to_tgt".
var phraseTables = map[string]map[string]string{
	"en_to_hi": {
		"hello": "नमस्ते", "hello,": "नमस्ते,", "hello, how are you?": "नमस्ते, आप कैसे हैं?",
		"the weather is nice today": "आज मौसम अच्छा है", "good morning": "सुप्रभात",
		"thank you": "धन्यवाद", "yes": "हाँ", "no": "नहीं", "please": "कृपया",
		"sorry": "माफ़ करना", "excuse me": "क्षमा करें", "how much?": "कितना?",
		"where is": "कहाँ है", "what is this": "यह क्या है", "i need help": "मुझे मदद चाहिए",
	},
	"en_to_bn": {
		"hello": "হ্যালো", "hello,": "হ্যালো,", "hello, how are you?": "হ্যালো, আপনি কেমন আছেন?",
		"the weather is nice today": "আজ আবহাওয়া ভাল", "good morning": "সুপ্রভাত",
		"thank you": "ধন্যবাদ", "yes": "হ্যাঁ", "no": "না", "please": "অনুগ্রহ করে",
		"sorry": "দুঃখিত", "excuse me": "ক্ষমা করবেন", "how much?": "কত?",
		"where is": "কোথায়", "what is this": "এটা কি", "i need help": "আমার সাহায্য লাগবে",
	},
	"en_to_ta": {
		"hello": "வணக்கம்", "hello,": "வணக்கம்,", "hello, how are you?": "வணக்கம், நீங்கள் எப்படி இருக்கிறீர்கள்?",
		"the weather is nice today": "இன்று வானிலை நன்றாக இருக்கிறது", "good morning": "காலை வணக்கம்",
		"thank you": "நன்றி", "yes": "ஆம்", "no": "இல்லை", "please": "தயவுசெய்து",
		"sorry": "மன்னிக்கவும்", "excuse me": "மன்னிக்கவும்", "how much?": "எவ்வளவு?",
		"where is": "எங்கே", "what is this": "இது என்ன", "i need help": "எனக்கு உதவி வேண்டும்",
	},
	"en_to_te": {
		"hello": "హలో", "hello,": "హలో,", "hello, how are you?": "హలో, మీరు ఎలా ఉన్నారు?",
		"the weather is nice today": "ఈ రోజు వాతావరణం బాగుంది", "good morning": "శుభోదయం",
		"thank you": "ధన్యవాదాలు", "yes": "అవును", "no": "లేదు", "please": "దయచేసి",
		"sorry": "క్షమించండి", "excuse me": "క్షమించండి", "how much?": "ఎంత?",
		"where is": "ఎక్కడ", "what is this": "ఇది ఏమిటి", "i need help": "నాకు సహాయం కావాలి",
	},
	"en_to_gu": {
		"hello": "હેલો", "hello,": "હેલો,", "hello, how are you?": "હેલો, તમે કેમ છો?",
		"the weather is nice today": "આજે હવામાન સારું છે", "good morning": "સુપ્રભાત",
		"thank you": "આભાર", "yes": "હા", "no": "ના", "please": "કૃપા કરીને",
		"sorry": "માફ કરશો", "excuse me": "માફ કરશો", "how much?": "કેટલું?",
		"where is": "ક્યાં છે", "what is this": "આ શું છે", "i need help": "મને મદદ જોઈએ",
	},
	"en_to_mr": {
		"hello": "हॅलो", "hello,": "हॅलो,", "hello, how are you?": "हॅलो, तुम्ही कसे आहात?",
		"the weather is nice today": "आज हवामान छान आहे", "good morning": "सुप्रभात",
		"thank you": "धन्यवाद", "yes": "होय", "no": "नाही", "please": "कृपया",
		"sorry": "माफ करा", "excuse me": "माफ करा", "how much?": "किती?",
		"where is": "कुठे आहे", "what is this": "हे काय आहे", "i need help": "मला मदत हवी",
	},
}

// Lookup translates text through the phrase table for the pair. An
// exact match returns the table phrase; a phrase occurring as whole
// words inside the text is substituted in place; otherwise the text
// comes back unchanged at MissConfidence.
func Lookup(text, sourceLang, targetLang string) Result {
	table, ok := phraseTables[sourceLang+"_to_"+targetLang]
	if !ok {
		return Result{Text: text, Confidence: MissConfidence}
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	if translated, exact := table[lower]; exact {
		return Result{Text: translated, Confidence: MatchConfidence, Matched: true}
	}

	// Longest phrase first so "hello, how are you?" wins over "hello".
	for _, phrase := range phrasesByLength(table) {
		if i := phraseIndex(lower, phrase); i >= 0 {
			return Result{
				Text:       lower[:i] + table[phrase] + lower[i+len(phrase):],
				Confidence: MatchConfidence,
				Matched:    true,
			}
		}
	}

	return Result{Text: text, Confidence: MissConfidence}
}

// phraseIndex locates phrase inside text at word boundaries: the runes
// adjacent to the occurrence must not be letters or digits, so "no"
// never matches inside "unknown".
func phraseIndex(text, phrase string) int {
	for start := 0; start+len(phrase) <= len(text); {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return -1
		}
		i += start
		if boundaryBefore(text, i) && boundaryAfter(text, i+len(phrase)) {
			return i
		}
		start = i + 1
	}
	return -1
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, end int) bool {
	if end == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func phrasesByLength(table map[string]string) []string {
	phrases := make([]string, 0, len(table))
	for phrase := range table {
		phrases = append(phrases, phrase)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})
	return phrases
}
