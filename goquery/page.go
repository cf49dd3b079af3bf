// Package goquery builds page snapshots from static HTML using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailscout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hiddenSelector matches elements whose text is never rendered.
const hiddenSelector = "head, script, style, noscript, template"

// ParsePage parses markup fetched from pageURL into a page snapshot.
// Visible text approximates the body's rendered text: non-rendered elements
// are dropped, inline text is joined and block elements start new lines. Hrefs are resolved against the document base
// (a <base href> if present, otherwise pageURL), as a browser would report
// them; anchors without an href yield a nil entry.
func ParsePage(markup string, pageURL string) (*mailscout.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EEXTRACTION, "failed to parse HTML: %v", err)
	}

	base, _ := url.Parse(pageURL)
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok && base != nil {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	var hrefs []*string
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			hrefs = append(hrefs, nil)
			return
		}
		resolved := resolveURL(base, href)
		hrefs = append(hrefs, &resolved)
	})

	return &mailscout.Page{
		URL:         pageURL,
		Markup:      markup,
		VisibleText: visibleText(doc),
		Hrefs:       hrefs,
	}, nil
}

// blockElements start and end a line of visible text. Text inside inline
// elements joins its neighbours, as in a browser's innerText.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Caption: true, atom.Dd: true, atom.Details: true,
	atom.Dialog: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.Option: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Summary: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Tfoot: true, atom.Th: true,
	atom.Thead: true, atom.Tr: true, atom.Ul: true,
}

// visibleText returns the body's text with one line per block.
func visibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find(hiddenSelector).Remove()

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(strings.Map(flattenSpace, n.Data))
			return
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte('\n')
			return
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		}
	}
	for _, n := range body.Nodes {
		walk(n)
	}

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// flattenSpace turns source line breaks into spaces; only elements break lines.
func flattenSpace(r rune) rune {
	if r == '\n' || r == '\r' || r == '\t' || r == '\f' {
		return ' '
	}
	return r
}

// resolveURL resolves href against base. Unparseable hrefs, or any href
// when there is no base, are returned trimmed but otherwise unchanged.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
