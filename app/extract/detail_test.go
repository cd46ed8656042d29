package extract

import (
	"errors"
	"net/url"
	"testing"
)

const detailHTML = `<html><body>
<div id="content-blocks">
  <p>First paragraph of the article.</p>
  <script>console.log("noise");</script>
  <style>.x { color: red; }</style>
  <p>Second paragraph.</p>
</div>
</body></html>`

func TestDetailExtraction(t *testing.T) {
	pageURL, _ := url.Parse("https://example.com/news/first")

	text, err := Detail([]byte(detailHTML), "#content-blocks", pageURL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := "First paragraph of the article. Second paragraph."
	if text != want {
		t.Errorf("Expected %q, got: %q", want, text)
	}
}

func TestDetailNoContentFound(t *testing.T) {
	pageURL, _ := url.Parse("https://example.com/news/empty")

	_, err := Detail([]byte(`<html><body></body></html>`), "#content-blocks", pageURL)
	if err == nil {
		t.Fatal("Expected error for page without content")
	}

	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("Expected *extract.Error, got: %T", err)
	}
	if extractErr.Kind != KindNoContentFound {
		t.Errorf("Expected NoContentFound kind, got: %s", extractErr.Kind)
	}
}
