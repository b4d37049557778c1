package jobinfo

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/coverletter-agent/internal/fetch"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// Fallback values when a field cannot be located. The posting is still
// usable for drafting as long as a description was found.
const (
	unknownTitle   = "Unknown Position"
	unknownCompany = "Unknown Company"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// jsonLDPosting mirrors the schema.org JobPosting fields we care about.
type jsonLDPosting struct {
	Type               string `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
}

// ExtractPosting pulls title, company and description out of a posting page.
// Extraction order: schema.org JSON-LD markup first, then job-board
// selectors, then generic headings. Fails if no description can be found.
func ExtractPosting(html string) (*types.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if posting := extractJSONLD(doc); posting != nil {
		return posting, nil
	}

	posting := &types.JobPosting{
		Title:   extractTitle(doc),
		Company: extractCompany(doc),
	}

	description, err := extractDescription(doc, html)
	if err != nil {
		return nil, err
	}
	posting.Description = description

	return posting, nil
}

// extractJSONLD looks for a schema.org JobPosting script block.
func extractJSONLD(doc *goquery.Document) *types.JobPosting {
	var found *types.JobPosting

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var ld jsonLDPosting
		if err := json.Unmarshal([]byte(s.Text()), &ld); err != nil {
			return true // malformed block, keep scanning
		}
		if !strings.EqualFold(ld.Type, "JobPosting") || ld.Title == "" || ld.Description == "" {
			return true
		}

		posting := &types.JobPosting{
			Title:       strings.TrimSpace(ld.Title),
			Company:     strings.TrimSpace(ld.HiringOrganization.Name),
			Description: stripTags(ld.Description),
		}
		if posting.Company == "" {
			posting.Company = unknownCompany
		}
		found = posting
		return false
	})

	return found
}

func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"h1.top-card-layout__title",
		"h1.topcard__title",
		"h1",
	}
	for _, selector := range selectors {
		if text := firstText(doc, selector); text != "" {
			return text
		}
	}
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && title != "" {
		return strings.TrimSpace(title)
	}
	return unknownTitle
}

func extractCompany(doc *goquery.Document) string {
	selectors := []string{
		"a.topcard__org-name-link",
		"span.topcard__flavor",
		".top-card-layout__card .topcard__org-name-link",
		`meta[property="og:site_name"]`,
	}
	for _, selector := range selectors {
		if strings.HasPrefix(selector, "meta") {
			if name, ok := doc.Find(selector).Attr("content"); ok && name != "" {
				return strings.TrimSpace(name)
			}
			continue
		}
		if text := firstText(doc, selector); text != "" {
			return text
		}
	}
	return unknownCompany
}

func extractDescription(doc *goquery.Document, html string) (string, error) {
	text, err := fetch.MainText(html, fetch.DescriptionSelectors())
	if err == nil && strings.TrimSpace(text) != "" {
		return blankLines.ReplaceAllString(text, "\n\n"), nil
	}

	// Last resort: first paragraphs on the page
	var parts []string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
		return i < 20
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("no description content found")
	}
	return strings.Join(parts, "\n"), nil
}

func firstText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// stripTags converts an HTML fragment (JSON-LD descriptions are usually
// HTML-encoded) to plain text.
func stripTags(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return fetch.CollapseWhitespace(doc.Text())
}
