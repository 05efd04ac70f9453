package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PageFetcher returns the readable text of a web page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPPageFetcher downloads pages and flattens their HTML into text.
type HTTPPageFetcher struct {
	Client    *http.Client
	MaxChars  int
	UserAgent string
}

const defaultUserAgent = "Mozilla/5.0 (compatible; jobhunt/1.0)"

// cap on bytes read per page
const maxBodyBytes = 5 << 20

func NewHTTPPageFetcher(timeout time.Duration, maxChars int) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		Client:    &http.Client{Timeout: timeout},
		MaxChars:  maxChars,
		UserAgent: defaultUserAgent,
	}
}

func (f *HTTPPageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body := io.LimitReader(resp.Body, maxBodyBytes)
	var text string
	if strings.Contains(resp.Header.Get("Content-Type"), "html") || resp.Header.Get("Content-Type") == "" {
		text, err = HTMLToText(body)
	} else {
		var raw []byte
		raw, err = io.ReadAll(body)
		text = collapseWhitespace(string(raw))
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return truncate(text, f.MaxChars), nil
}

// skipped elements never carry visible listing text
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"head":     true,
	"template": true,
}

// HTMLToText returns the visible text of an HTML document. Links keep their
// target in brackets so the model can still follow a job's own page.
func HTMLToText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var (
		sb    strings.Builder
		depth int
	)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return collapseWhitespace(sb.String()), nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if skippedElements[tag] && tt == html.StartTagToken {
				depth++
				continue
			}
			if depth > 0 {
				continue
			}
			if tag == "a" && hasAttr {
				if href := attr(z, "href"); strings.HasPrefix(href, "http") {
					sb.WriteString(" [" + href + "] ")
				}
			}
			if isBlock(tag) {
				sb.WriteString("\n")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skippedElements[tag] {
				if depth > 0 {
					depth--
				}
				continue
			}
			if depth == 0 && isBlock(tag) {
				sb.WriteString("\n")
			}
		case html.TextToken:
			if depth == 0 {
				sb.Write(z.Text())
				sb.WriteString(" ")
			}
		}
	}
}

func attr(z *html.Tokenizer, key string) string {
	for {
		k, v, more := z.TagAttr()
		if string(k) == key {
			return string(v)
		}
		if !more {
			return ""
		}
	}
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6",
		"section", "article", "header", "footer", "ul", "ol", "table", "hr":
		return true
	}
	return false
}

// collapseWhitespace squeezes runs of spaces and drops blank lines.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
