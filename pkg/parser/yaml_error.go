package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// goccyPosRe matches the "[line:column] message" prefix goccy puts on
// syntax errors. The annotated source snippet that may follow on later
// lines is dropped.
var goccyPosRe = regexp.MustCompile(`^\s*\[(\d+):(\d+)\]\s*(.*)`)

// yamlLineRe matches the "yaml: line N: message" format used by other YAML
// parsers, kept so error text from re-wrapped errors still resolves.
var yamlLineRe = regexp.MustCompile(`yaml: line (\d+): (.*)`)

// ExtractYAMLError pulls a 1-based line/column and a clean message out of a
// YAML parse error. Line 0 means the error carried no usable position.
func ExtractYAMLError(err error) (line int, column int, message string) {
	errStr := err.Error()
	firstLine, _, _ := strings.Cut(errStr, "\n")

	if m := goccyPosRe.FindStringSubmatch(firstLine); m != nil {
		line, _ = strconv.Atoi(m[1])
		column, _ = strconv.Atoi(m[2])
		message = strings.TrimSpace(m[3])
		if message == "" {
			message = "syntax error"
		}
		return line, column, message
	}

	if m := yamlLineRe.FindStringSubmatch(firstLine); m != nil {
		line, _ = strconv.Atoi(m[1])
		return line, 1, strings.TrimSpace(m[2])
	}

	return 0, 0, firstLine
}
