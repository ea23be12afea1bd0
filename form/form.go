package form

import (
	"fmt"
	"html"
	"strings"

	"github.com/skeletohq/skeleto/model"
)

// Build renders an HTML form for the schema. Text inputs for TEXT
// columns, number inputs otherwise. Submitted values and validation
// errors are escaped before being embedded.
func Build(schema model.Schema, values, errs map[string]string) string {
	var b strings.Builder
	b.WriteString("<form method='post'>\n")
	for _, f := range schema.Fields {
		inputType := "number"
		if strings.Contains(strings.ToUpper(f.Type), "TEXT") {
			inputType = "text"
		}
		value := html.EscapeString(values[f.Name])

		errSpan := ""
		if msg, ok := errs[f.Name]; ok {
			errSpan = fmt.Sprintf("<span style='color:red'>%s</span>", html.EscapeString(msg))
		}

		fmt.Fprintf(&b, "%s: <input name='%s' type='%s' value='%s'> %s<br>\n",
			f.Name, f.Name, inputType, value, errSpan)
	}
	b.WriteString("<input type='submit'>\n</form>")
	return b.String()
}

// Validate returns an error message per schema field missing from the
// form. An empty map means the form is valid.
func Validate(schema model.Schema, form map[string]string) map[string]string {
	errs := map[string]string{}
	for _, f := range schema.Fields {
		if form[f.Name] == "" {
			errs[f.Name] = "Field required"
		}
	}
	return errs
}
