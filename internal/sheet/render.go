package sheet

import (
	_ "embed"
	"fmt"

	"github.com/aymerick/raymond"
)

// DefaultTemplate is used when no template file is configured
//
//go:embed default.hbs
var DefaultTemplate string

func init() {
	raymond.RegisterHelper("ifPageEnder", ifPageEnder)
}

// ifPageEnder renders its block when the 0-based card index is a
// page-ender position. Page-ender positions are 1-based.
//
//	{{#each cards}}{{#ifPageEnder ../pageEnders @index}}...{{/ifPageEnder}}{{/each}}
func ifPageEnder(enders interface{}, index interface{}, options *raymond.Options) string {
	list, ok := enders.([]int)
	i, isInt := index.(int)
	if ok && isInt {
		for _, e := range list {
			if e == i+1 {
				return options.Fn()
			}
		}
	}
	return options.Inverse()
}

// Sheets holds the two renditions of a deck
type Sheets struct {
	Tabletop string // virtual tabletop sheet, print=false
	Print    string // printer sheet, print=true
}

// Compile parses a Handlebars sheet template
func Compile(source string) (*raymond.Template, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("error parsing template: %w", err)
	}
	return tpl, nil
}

// Render renders one variant of the sheet. It is the only render path;
// both variants go through it.
func Render(tpl *raymond.Template, s *Scope, forPrint bool) (string, error) {
	out, err := tpl.Exec(s.Context(forPrint))
	if err != nil {
		variant := "tabletop"
		if forPrint {
			variant = "print"
		}
		return "", fmt.Errorf("error rendering %s sheet: %w", variant, err)
	}
	return out, nil
}

// RenderBoth renders the tabletop variant and then the print variant
// against the same template and scope.
func RenderBoth(tpl *raymond.Template, s *Scope) (Sheets, error) {
	tabletop, err := Render(tpl, s, false)
	if err != nil {
		return Sheets{}, err
	}
	printed, err := Render(tpl, s, true)
	if err != nil {
		return Sheets{}, err
	}
	return Sheets{Tabletop: tabletop, Print: printed}, nil
}
