package render

import "strings"

// InjectCSS inserts a <style> block into an HTML document.
// Tries </head> first, then <body>, then prepends to the HTML.
func InjectCSS(htmlContent, css string) string {
	if css == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			pos := idx + closeIdx + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
