package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var templateFuncs = sprig.TxtFuncMap()

const bannerTemplate = `Welcome!
Commands: {{ .Commands | join ", " }}
Grab the gold and escape! Beware the wumpus!`

const escapeTemplate = `Congratulations! You escaped!
You collected {{ .Gold }} gold.
Goodbye!`

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// ExpandLines expands a template and splits the result into lines.
func ExpandLines(tmplStr string, data any) ([]string, error) {
	s, err := ExpandTemplate(tmplStr, data)
	if err != nil {
		return nil, err
	}
	return strings.Split(s, "\n"), nil
}

// Banner is sent once to every new connection.
func Banner(commands []string) ([]string, error) {
	return ExpandLines(bannerTemplate, struct{ Commands []string }{commands})
}

// EscapeSummary is sent to a player who climbs out of the cave.
func EscapeSummary(gold int) ([]string, error) {
	return ExpandLines(escapeTemplate, struct{ Gold int }{gold})
}
