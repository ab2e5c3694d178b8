package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexjob/nexjob-api/internal/models"
)

func newTestAdService() *AdvertisementService {
	settings := testSettingsRow()
	settings.PopupAdCode = "<script>popup</script>"
	settings.SingleMiddleAdCode = "<ins>middle-ad</ins>"
	return NewAdvertisementService(&stubSettingsProvider{settings: settings}, nil)
}

func TestAdCodeByPosition(t *testing.T) {
	svc := newTestAdService()

	resp, err := svc.AdCode(context.Background(), models.AdPopup)
	require.NoError(t, err)
	assert.Equal(t, "popup", resp.Position)
	assert.Equal(t, "<script>popup</script>", resp.Code)

	// Unset placements answer with an empty code, not an error.
	empty, err := svc.AdCode(context.Background(), models.AdSidebarSingle)
	require.NoError(t, err)
	assert.Empty(t, empty.Code)

	_, err = svc.AdCode(context.Background(), models.AdPosition("footer"))
	assert.Error(t, err)
}

func TestAllAdCodesCoversEveryPlacement(t *testing.T) {
	svc := newTestAdService()

	codes := svc.AllAdCodes(context.Background())
	assert.Len(t, codes, len(models.AdPositions))
}

func TestInsertBeforeMedianHeading(t *testing.T) {
	html := `<p>intro</p><h2>One</h2><p>a</p><h2>Two</h2><p>b</p><h2>Three</h2><p>c</p>`

	out := InsertBeforeMedianHeading(html, "<ins>ad</ins>")

	// Three headings: the ad lands before the second one.
	assert.Equal(t, `<p>intro</p><h2>One</h2><p>a</p><ins>ad</ins><h2>Two</h2><p>b</p><h2>Three</h2><p>c</p>`, out)
}

func TestInsertBeforeMedianHeadingSingleHeading(t *testing.T) {
	html := `<p>intro</p><h2>Only</h2><p>a</p>`

	out := InsertBeforeMedianHeading(html, "<ins>ad</ins>")
	assert.True(t, strings.HasPrefix(out, `<p>intro</p><ins>ad</ins><h2>Only</h2>`))
}

func TestInsertBeforeMedianHeadingNoOps(t *testing.T) {
	plain := `<p>no headings here</p>`
	assert.Equal(t, plain, InsertBeforeMedianHeading(plain, "<ins>ad</ins>"))

	withHeading := `<h2>One</h2>`
	assert.Equal(t, withHeading, InsertBeforeMedianHeading(withHeading, ""))
}

func TestInsertBeforeMedianHeadingAttributes(t *testing.T) {
	html := `<h2 class="title">One</h2><h2>Two</h2>`

	out := InsertBeforeMedianHeading(html, "|ad|")
	assert.Equal(t, `<h2 class="title">One</h2>|ad|<h2>Two</h2>`, out)
}

func TestInjectMiddleAdUsesConfiguredSnippet(t *testing.T) {
	svc := newTestAdService()

	out := svc.InjectMiddleAd(context.Background(), `<h2>A</h2><h2>B</h2>`)
	assert.Contains(t, out, "<ins>middle-ad</ins>")
}
