package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = language.NewMatcher([]language.Tag{
	language.English,
	language.BrazilianPortuguese,
})

// Printer returns a message printer for the given BCP 47 locale, falling
// back to English for unknown or unsupported values.
func Printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		return message.NewPrinter(language.English)
	}
	matched, _, _ := supported.Match(tag)
	return message.NewPrinter(matched)
}
