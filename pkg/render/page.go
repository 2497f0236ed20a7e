package render

import (
	"fmt"
	"io"
	"strings"
)

// PageConfig configures the HTML shell wrapped around rendered markup.
type PageConfig struct {
	// Title is the page title.
	Title string

	// Lang is the html lang attribute (default "en").
	Lang string

	// Stylesheets are href values emitted as <link rel="stylesheet">.
	Stylesheets []string

	// LiveEndpoint, when non-empty, embeds the thin-client bootstrap
	// pointing at the given websocket path.
	LiveEndpoint string

	// SessionID is embedded alongside the live bootstrap so a resuming
	// client reattaches to its session.
	SessionID string
}

// WritePage wraps body markup in a complete HTML document.
func WritePage(w io.Writer, cfg PageConfig, body string) error {
	lang := cfg.Lang
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.WriteString("<!doctype html>\n")
	fmt.Fprintf(&b, "<html lang=%q>\n<head>\n<meta charset=\"utf-8\">\n", lang)
	if cfg.Title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", escapeTitle(cfg.Title))
	}
	for _, href := range cfg.Stylesheets {
		fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=%q>\n", href)
	}
	b.WriteString("</head>\n<body>")
	b.WriteString(body)
	if cfg.LiveEndpoint != "" {
		fmt.Fprintf(&b, "\n<script>window.__veld={ws:%q,sid:%q};</script>\n<script src=\"/client.js\"></script>",
			cfg.LiveEndpoint, cfg.SessionID)
	}
	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

var titleEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeTitle(s string) string {
	return titleEscaper.Replace(s)
}
