package extract

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Day-first layouts tried before the general parser. dateparse has no
// dd-mm-yy layouts with a two-digit year, so names like "28-10-25"
// need an explicit pass.
var dayFirstLayouts = []string{
	"2-1-06",
	"2-1-2006",
	"2-Jan-06",
	"2-Jan-2006",
	"2-January-06",
	"2-January-2006",
}

// ParseErrorPrefix marks a Date value whose sheet name could not be parsed.
// Date failures are data, not errors: the sheet is still extracted.
const ParseErrorPrefix = "PARSE_ERROR: "

// ConvertSheetNameToDate derives an ISO date from a worksheet name.
// Handles formats like 28-10-25, 28-Oct-25, 28.10.25, 28-October-25;
// ambiguous numeric dates resolve day-first. On failure it returns the
// cleaned sheet name behind ParseErrorPrefix.
func ConvertSheetNameToDate(sheetName string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(sheetName), ".", "-")

	for _, layout := range dayFirstLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed.Format("2006-01-02")
		}
	}

	parsed, err := dateparse.ParseAny(cleaned,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return ParseErrorPrefix + cleaned
	}

	return parsed.Format("2006-01-02")
}
