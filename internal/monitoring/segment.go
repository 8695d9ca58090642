package monitoring

import (
	"regexp"
	"strings"
)

// reFuncName captures package, optional receiver and method of a runtime function name.
var reFuncName = regexp.MustCompile(`(?:[^/]+/)*([^./]+)\.(?:\(?\*?([^.)]+)\)?\.)?(.+)$`)

func getSegmentName(fullFuncName string) string {
	matches := reFuncName.FindStringSubmatch(fullFuncName)
	if len(matches) < 4 {
		return fullFuncName
	}

	parts := make([]string, 0, 3)
	for _, part := range matches[1:4] {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ".")
}
