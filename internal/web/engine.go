package web

import (
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	appweb "budget-backend/web"

	"github.com/gofiber/template/html/v2"
)

const Layout = "layouts/main"

// NewEngine loads the embedded templates.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(appweb.TemplatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("templates fs: %w", err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("yen", formatAmount)
	engine.AddFunc("barWidth", barWidth)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return engine, nil
}

// formatAmount renders 1234567 as "1,234,567".
func formatAmount(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// barWidth is the bar length in percent, at least 2 so small amounts stay visible.
func barWidth(amount, max int64) string {
	if max <= 0 {
		return "0%"
	}
	pct := float64(amount) / float64(max) * 100
	if pct < 2 {
		pct = 2
	}
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
