package scanner

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var jobCardClasses = []string{
	"job-card-container",
	"jobs-search-results__list-item",
	"base-card",
	"job_seen_beacon",
}

var jobCardAttributes = []string{
	"data-job-id",
	"data-occludable-job-id",
	"data-jk",
}

var (
	titleClassHints    = []string{"job-card-list__title", "base-search-card__title", "jobtitle", "job-title"}
	companyClassHints  = []string{"job-card-container__company-name", "base-search-card__subtitle", "company"}
	locationClassHints = []string{"job-card-container__metadata-item", "job-search-card__location", "location"}
)

var captchaHosts = []string{
	"google.com/recaptcha",
	"recaptcha.net",
	"hcaptcha.com",
	"arkoselabs.com",
	"funcaptcha.com",
	"challenges.cloudflare.com",
}

var captchaMarkers = []string{"captcha", "recaptcha", "hcaptcha", "funcaptcha", "arkose", "cf-challenge"}

// most specific first, the first match names the signal
var captchaTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)let'?s do a quick security check`),
	regexp.MustCompile(`(?i)verify you are (a )?human`),
	regexp.MustCompile(`(?i)are you a robot`),
	regexp.MustCompile(`(?i)unusual activity`),
	regexp.MustCompile(`(?i)security check`),
}

var whitespace = regexp.MustCompile(`\s+`)

func getAttr(node *html.Node, name string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func classes(node *html.Node) []string {
	class, _ := getAttr(node, "class")
	return strings.Fields(class)
}

func hasClassContaining(node *html.Node, hints []string) bool {
	for _, class := range classes(node) {
		lower := strings.ToLower(class)
		for _, hint := range hints {
			if strings.Contains(lower, hint) {
				return true
			}
		}
	}
	return false
}

// isHidden reports whether node itself is hidden. Callers skip whole subtrees
// of hidden nodes, so ancestors need no check here.
func isHidden(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}

	if _, ok := getAttr(node, "hidden"); ok {
		return true
	}

	if ariaHidden, ok := getAttr(node, "aria-hidden"); ok && strings.EqualFold(ariaHidden, "true") {
		return true
	}

	if node.DataAtom == atom.Input {
		if inputType, ok := getAttr(node, "type"); ok && strings.EqualFold(inputType, "hidden") {
			return true
		}
	}

	style, _ := getAttr(node, "style")
	style = strings.ToLower(strings.ReplaceAll(style, " ", ""))

	return strings.Contains(style, "display:none") ||
		strings.Contains(style, "visibility:hidden") ||
		strings.Contains(style, "opacity:0;") ||
		strings.HasSuffix(style, "opacity:0")
}

func isJobCard(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}

	for _, attribute := range jobCardAttributes {
		if _, ok := getAttr(node, attribute); ok {
			return true
		}
	}

	return hasClassContaining(node, jobCardClasses)
}

// visibleText collects the text of node's visible subtree.
func visibleText(node *html.Node) string {
	var builder strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isHidden(n) {
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style || n.DataAtom == atom.Noscript) {
			return
		}
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
			builder.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return strings.TrimSpace(whitespace.ReplaceAllString(builder.String(), " "))
}

func findFirst(node *html.Node, match func(*html.Node) bool) *html.Node {
	if isHidden(node) {
		return nil
	}
	if match(node) {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func extractJobCard(node *html.Node, pageURL *url.URL) *JobCard {
	card := &JobCard{}

	for _, attribute := range jobCardAttributes {
		if value, ok := getAttr(node, attribute); ok && value != "" {
			card.JobID = value
			break
		}
	}

	if title := findFirst(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClassContaining(n, titleClassHints)
	}); title != nil {
		card.Title = visibleText(title)
	}

	if company := findFirst(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClassContaining(n, companyClassHints)
	}); company != nil {
		card.Company = visibleText(company)
	}

	if location := findFirst(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClassContaining(n, locationClassHints)
	}); location != nil {
		card.Location = visibleText(location)
	}

	if link := findFirst(node, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			return false
		}
		_, ok := getAttr(n, "href")
		return ok
	}); link != nil {
		href, _ := getAttr(link, "href")
		card.URL = resolveLink(pageURL, href)

		if card.Title == "" {
			card.Title = visibleText(link)
		}
	}

	if card.Title == "" {
		card.Title = firstHeadingText(node)
	}

	return card
}

func firstHeadingText(node *html.Node) string {
	heading := findFirst(node, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4:
			return true
		default:
			return false
		}
	})
	if heading == nil {
		return ""
	}
	return visibleText(heading)
}

func resolveLink(pageURL *url.URL, href string) string {
	link, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if pageURL == nil {
		return link.String()
	}
	return pageURL.ResolveReference(link).String()
}

// captchaSignal returns a description when node looks like a captcha widget.
func captchaSignal(node *html.Node) (string, bool) {
	if node.Type != html.ElementNode {
		return "", false
	}

	if node.DataAtom == atom.Iframe {
		src, _ := getAttr(node, "src")
		lowerSrc := strings.ToLower(src)
		for _, host := range captchaHosts {
			if strings.Contains(lowerSrc, host) {
				return "iframe:" + host, true
			}
		}
	}

	id, _ := getAttr(node, "id")
	lowerID := strings.ToLower(id)
	for _, marker := range captchaMarkers {
		if strings.Contains(lowerID, marker) {
			return "id:" + id, true
		}
	}

	for _, class := range classes(node) {
		lowerClass := strings.ToLower(class)
		for _, marker := range captchaMarkers {
			if strings.Contains(lowerClass, marker) {
				return "class:" + class, true
			}
		}
	}

	return "", false
}

func captchaTextSignal(text string) (string, bool) {
	for _, pattern := range captchaTextPatterns {
		if match := pattern.FindString(text); match != "" {
			return "text:" + strings.ToLower(match), true
		}
	}
	return "", false
}
