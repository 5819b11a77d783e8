package internal

import (
	"bytes"
	"text/template"
)

// ParseTemplate renders a chat response template with the given data.
func ParseTemplate(responseTemplate string, data any) (string, error) {
	tmpl, err := template.New("response").Parse(responseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
