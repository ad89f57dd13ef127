package usecase

import (
	"regexp"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
)

const phoneDigits = 10

var nonDigit = regexp.MustCompile(`\D`)

// NormalizedRow is an accepted row before an agent has been assigned.
type NormalizedRow struct {
	FirstName string
	Phone     string
	Notes     string
}

// HasRequiredHeaders reports whether a row has both a first-name and a phone
// column. Only the first row of a file is checked.
func HasRequiredHeaders(row tabular.Row) bool {
	_, hasFirstName := ResolveField(row, FirstNameAliases)
	_, hasPhone := ResolveField(row, PhoneAliases)
	return hasFirstName && hasPhone
}

// NormalizePhone strips every non-digit and reports whether exactly ten remain.
func NormalizePhone(raw string) (string, bool) {
	digits := nonDigit.ReplaceAllString(raw, "")
	return digits, len(digits) == phoneDigits
}

// NormalizeRow extracts the lead fields of a row. The second result is false
// when the row is rejected; rejection is not an error.
func NormalizeRow(row tabular.Row) (NormalizedRow, bool) {
	rawPhone, _ := ResolveField(row, PhoneAliases)
	phone, ok := NormalizePhone(tabular.ValueString(rawPhone))
	if !ok {
		return NormalizedRow{}, false
	}

	firstName, _ := ResolveField(row, FirstNameAliases)
	notes, _ := ResolveField(row, NotesAliases)

	return NormalizedRow{
		FirstName: tabular.ValueString(firstName),
		Phone:     phone,
		Notes:     tabular.ValueString(notes),
	}, true
}
