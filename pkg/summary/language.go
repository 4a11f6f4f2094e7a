package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skimtext/skim/pkg/normalize"
	"github.com/skimtext/skim/pkg/stopwords"
)

// Language identifies a document's natural language. The set of
// languages is closed; use ParseLanguage to map user input onto it.
type Language string

// Supported languages.
const (
	Afrikaans  Language = "afrikaans"
	Arabic     Language = "arabic"
	Armenian   Language = "armenian"
	Basque     Language = "basque"
	Bengali    Language = "bengali"
	Breton     Language = "breton"
	Bulgarian  Language = "bulgarian"
	Catalan    Language = "catalan"
	Chinese    Language = "chinese"
	Croatian   Language = "croatian"
	Czech      Language = "czech"
	Danish     Language = "danish"
	Dutch      Language = "dutch"
	English    Language = "english"
	Esperanto  Language = "esperanto"
	Estonian   Language = "estonian"
	Finnish    Language = "finnish"
	French     Language = "french"
	Galician   Language = "galician"
	German     Language = "german"
	Greek      Language = "greek"
	Gujarati   Language = "gujarati"
	Hausa      Language = "hausa"
	Hebrew     Language = "hebrew"
	Hindi      Language = "hindi"
	Hungarian  Language = "hungarian"
	Indonesian Language = "indonesian"
	Irish      Language = "irish"
	Italian    Language = "italian"
	Japanese   Language = "japanese"
	Korean     Language = "korean"
	Kurdish    Language = "kurdish"
	Latin      Language = "latin"
	Latvian    Language = "latvian"
	Lithuanian Language = "lithuanian"
	Malay      Language = "malay"
	Marathi    Language = "marathi"
	Norwegian  Language = "norwegian"
	Persian    Language = "persian"
	Polish     Language = "polish"
	Portuguese Language = "portuguese"
	Romanian   Language = "romanian"
	Russian    Language = "russian"
	Slovak     Language = "slovak"
	Slovenian  Language = "slovenian"
	Somali     Language = "somali"
	Sotho      Language = "sotho"
	Spanish    Language = "spanish"
	Swahili    Language = "swahili"
	Swedish    Language = "swedish"
	Tagalog    Language = "tagalog"
	Tamil      Language = "tamil"
	Thai       Language = "thai"
	Turkish    Language = "turkish"
	Ukrainian  Language = "ukrainian"
	Urdu       Language = "urdu"
	Vietnamese Language = "vietnamese"
	Yoruba     Language = "yoruba"
	Zulu       Language = "zulu"
)

var languages = []Language{
	Afrikaans, Arabic, Armenian, Basque, Bengali, Breton, Bulgarian,
	Catalan, Chinese, Croatian, Czech, Danish, Dutch, English, Esperanto,
	Estonian, Finnish, French, Galician, German, Greek, Gujarati, Hausa,
	Hebrew, Hindi, Hungarian, Indonesian, Irish, Italian, Japanese,
	Korean, Kurdish, Latin, Latvian, Lithuanian, Malay, Marathi,
	Norwegian, Persian, Polish, Portuguese, Romanian, Russian, Slovak,
	Slovenian, Somali, Sotho, Spanish, Swahili, Swedish, Tagalog, Tamil,
	Thai, Turkish, Ukrainian, Urdu, Vietnamese, Yoruba, Zulu,
}

// Languages returns all supported languages in sorted order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseLanguage maps a case-insensitive language name onto the closed
// enumeration.
func ParseLanguage(name string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	for _, l := range languages {
		if l == lang {
			return lang, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %q", name)
}

// HasStemmer reports whether a stemming algorithm is available for the
// language. Stemming and stopword data are independent capabilities.
func (l Language) HasStemmer() bool {
	return normalize.Stemmer(string(l)) != nil
}

// HasStopwords reports whether a stopword table is bundled for the
// language.
func (l Language) HasStopwords() bool {
	return len(stopwords.For(string(l))) > 0
}

// String returns the lowercase language name.
func (l Language) String() string {
	return string(l)
}
