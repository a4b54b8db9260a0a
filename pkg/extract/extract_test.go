package extract

import (
	"errors"
	"testing"
)

func extractOrFail(t *testing.T, html string) string {
	t.Helper()
	amount, err := NewCascade().ExtractPrice(html)
	if err != nil {
		t.Fatalf("ExtractPrice() error = %v", err)
	}
	return amount.String()
}

func TestCascade_MetaTagBeatsClassName(t *testing.T) {
	html := `<html><head>
		<meta name="twitter:data1" content="19.99">
	</head><body>
		<span class="price">49.99</span>
	</body></html>`

	if got := extractOrFail(t, html); got != "19.99" {
		t.Errorf("extracted %s, want meta value 19.99", got)
	}
}

func TestCascade_MetaTagPriority(t *testing.T) {
	html := `<html><head>
		<meta property="product:price:amount" content="30.00">
		<meta property="og:price:amount" content="20.00">
		<meta name="twitter:data1" content="10.00">
	</head><body></body></html>`

	if got := extractOrFail(t, html); got != "10" {
		t.Errorf("extracted %s, want twitter:data1 value 10", got)
	}
}

func TestCascade_RejectedMetaFallsThrough(t *testing.T) {
	// twitter:data1 exists but does not normalize; the next meta
	// candidate must be tried instead of aborting the cascade.
	html := `<html><head>
		<meta name="twitter:data1" content="sold out">
		<meta property="og:price:amount" content="24.99">
	</head><body></body></html>`

	if got := extractOrFail(t, html); got != "24.99" {
		t.Errorf("extracted %s, want og:price:amount value 24.99", got)
	}
}

func TestCascade_Microdata(t *testing.T) {
	html := `<html><body>
		<span itemprop="price">€34,95</span>
	</body></html>`

	if got := extractOrFail(t, html); got != "34.95" {
		t.Errorf("extracted %s, want 34.95", got)
	}
}

func TestCascade_MalformedJSONLDFallsThrough(t *testing.T) {
	// The JSON-LD block is broken; the microdata value must win
	// without the page being treated as an error.
	html := `<html><body>
		<script type="application/ld+json">{"offers": {"price": </script>
		<span itemprop="price">15.00</span>
	</body></html>`

	if got := extractOrFail(t, html); got != "15" {
		t.Errorf("extracted %s, want microdata value 15", got)
	}
}

func TestCascade_JSONLD(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "string price",
			html: `<script type="application/ld+json">{"@type":"Product","offers":{"price":"89.90"}}</script>`,
			want: "89.9",
		},
		{
			name: "numeric price",
			html: `<script type="application/ld+json">{"@type":"Product","offers":{"price":89.9}}</script>`,
			want: "89.9",
		},
		{
			name: "array root uses first element",
			html: `<script type="application/ld+json">[{"offers":{"price":"12.50"}},{"offers":{"price":"99.99"}}]</script>`,
			want: "12.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractOrFail(t, "<html><body>"+tt.html+"</body></html>"); got != tt.want {
				t.Errorf("extracted %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCascade_JSONLDWithoutOffersFallsThrough(t *testing.T) {
	html := `<html><body>
		<script type="application/ld+json">{"@type":"Article","headline":"news"}</script>
		<div class="price">55.00</div>
	</body></html>`

	if got := extractOrFail(t, html); got != "55" {
		t.Errorf("extracted %s, want class-based value 55", got)
	}
}

func TestCascade_NothingFound(t *testing.T) {
	html := `<html><body><p>no prices here</p></body></html>`

	_, err := NewCascade().ExtractPrice(html)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ExtractPrice() error = %v, want ErrNotFound", err)
	}
}
