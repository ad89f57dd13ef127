package usecase

import (
	"strings"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
)

// Column aliases in priority order.
var (
	FirstNameAliases = []string{"FirstName", "firstname", "First Name"}
	PhoneAliases     = []string{"Phone", "phone"}
	NotesAliases     = []string{"Notes", "notes", "Note"}
)

// ResolveField returns the value of the first row column whose header equals one
// of aliases, ignoring case. Aliases are tried in order, and for each alias the
// row columns are tried in source order. No trimming or partial matching.
func ResolveField(row tabular.Row, aliases []string) (any, bool) {
	for _, alias := range aliases {
		for _, c := range row {
			if strings.EqualFold(c.Header, alias) {
				return c.Value, true
			}
		}
	}
	return nil, false
}
