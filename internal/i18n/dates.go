// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"fmt"
	"time"
)

// Month names per language. Croatian uses the genitive forms required
// after a day number.
var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"de": {"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"it": {"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
		"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
	"hr": {"siječnja", "veljače", "ožujka", "travnja", "svibnja", "lipnja",
		"srpnja", "kolovoza", "rujna", "listopada", "studenoga", "prosinca"},
}

func monthName(lang string, m time.Month) string {
	months, ok := monthNames[lang]
	if !ok {
		months = monthNames["en"]
	}
	return months[m-1]
}

// FormatDate renders a full date following the conventions of lang.
// Unknown languages get the English format.
func FormatDate(t time.Time, lang string) string {
	month := monthName(lang, t.Month())
	switch lang {
	case "de":
		return fmt.Sprintf("%d. %s %d", t.Day(), month, t.Year())
	case "fr", "it":
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
	case "hr":
		return fmt.Sprintf("%d. %s %d.", t.Day(), month, t.Year())
	default:
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
}

// FormatMonthYear renders a month and year for archive listings.
func FormatMonthYear(year int, m time.Month, lang string) string {
	month := monthName(lang, m)
	switch lang {
	case "es":
		return fmt.Sprintf("%s de %d", month, year)
	case "hr":
		return fmt.Sprintf("%s %d.", month, year)
	default:
		return fmt.Sprintf("%s %d", month, year)
	}
}
