package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// dateDelimiters split a loosely formatted date taken into tokens. "/" is
// included so numeric dates like 1/25/96 split.
const dateDelimiters = ":- ,._/"

type tokenClass int

const (
	tokenOther tokenClass = iota
	tokenNumeric
	tokenYear // four-digit number
	tokenMonth
)

func (c tokenClass) String() string {
	switch c {
	case tokenNumeric:
		return "numeric"
	case tokenYear:
		return "numeric-4"
	case tokenMonth:
		return "month-name"
	default:
		return "other"
	}
}

type token struct {
	Text  string
	Class tokenClass
	Month int // set for tokenMonth
}

func (t token) String() string {
	return fmt.Sprintf("%s(%s)", t.Text, t.Class)
}

// tokenizedDate is a raw date string split into tokens with any meridiem
// marker pulled out. Only the first marker counts.
type tokenizedDate struct {
	Tokens []token
	AM     bool
	PM     bool
}

// tokenizeDate splits raw on dateDelimiters, case-folds and classifies the
// tokens. Empty tokens are dropped and "am"/"pm" never appear in Tokens.
func tokenizeDate(raw string) tokenizedDate {
	var td tokenizedDate
	fold := cases.Fold()
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(dateDelimiters, r)
	})
	for _, field := range fields {
		text := fold.String(field)
		switch text {
		case "am", "pm":
			if !td.AM && !td.PM {
				td.AM = text == "am"
				td.PM = text == "pm"
			}
			continue
		}
		td.Tokens = append(td.Tokens, classifyToken(text))
	}
	return td
}

func classifyToken(text string) token {
	if isNumericToken(text) {
		if utf8.RuneCountInString(text) == 4 {
			return token{Text: text, Class: tokenYear}
		}
		return token{Text: text, Class: tokenNumeric}
	}
	if month := monthOfYear(text); month != 0 {
		return token{Text: text, Class: tokenMonth, Month: month}
	}
	return token{Text: text, Class: tokenOther}
}
