package jobinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPosting_JSONLD(t *testing.T) {
	html := `
	<html><head>
		<script type="application/ld+json">
		{
			"@context": "https://schema.org/",
			"@type": "JobPosting",
			"title": "Staff Engineer",
			"description": "<p>Design distributed systems.</p><p>Mentor the team.</p>",
			"hiringOrganization": {"@type": "Organization", "name": "Globex"}
		}
		</script>
	</head><body><h1>Unrelated heading</h1></body></html>`

	posting, err := ExtractPosting(html)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", posting.Title)
	assert.Equal(t, "Globex", posting.Company)
	assert.Contains(t, posting.Description, "Design distributed systems.")
	assert.Contains(t, posting.Description, "Mentor the team.")
	assert.NotContains(t, posting.Description, "<p>")
}

func TestExtractPosting_SelectorFallback(t *testing.T) {
	posting, err := ExtractPosting(postingHTML)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", posting.Title)
	assert.Equal(t, "Acme", posting.Company)
	assert.Contains(t, posting.Description, "Build APIs")
}

func TestExtractPosting_GenericHeading(t *testing.T) {
	html := `
	<html><body>
		<h1>Site Reliability Engineer</h1>
		<article><p>Keep the lights on.</p></article>
	</body></html>`

	posting, err := ExtractPosting(html)
	require.NoError(t, err)
	assert.Equal(t, "Site Reliability Engineer", posting.Title)
	assert.Equal(t, unknownCompany, posting.Company)
	assert.Contains(t, posting.Description, "Keep the lights on.")
}

func TestExtractPosting_MalformedJSONLDIgnored(t *testing.T) {
	html := `
	<html><head>
		<script type="application/ld+json">{not json</script>
	</head><body>
		<h1>Data Engineer</h1>
		<main><p>Move the data.</p></main>
	</body></html>`

	posting, err := ExtractPosting(html)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", posting.Title)
	assert.Contains(t, posting.Description, "Move the data.")
}

func TestExtractPosting_NoContent(t *testing.T) {
	_, err := ExtractPosting("<html><body></body></html>")
	require.Error(t, err)
}
