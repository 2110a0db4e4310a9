package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/proteuswear/storefront-api/models"
)

// ImportProduct parses a product-page HTML document into a catalog record.
// It reads Open Graph metadata first and falls back to common page
// structure, so documents exported from most storefronts import cleanly.
func ImportProduct(r io.Reader) (*models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	product := &models.Product{}

	// Name
	product.Name = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if product.Name == "" {
		product.Name = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if product.Name == "" {
		return nil, fmt.Errorf("document has no product title")
	}

	// Price
	priceText := doc.Find(`meta[property="product:price:amount"]`).AttrOr("content", "")
	if priceText == "" {
		priceText = doc.Find(`[itemprop="price"]`).AttrOr("content", "")
	}
	if priceText == "" {
		priceText = strings.TrimSpace(doc.Find(".price").First().Text())
	}
	product.Price = parsePrice(priceText)

	product.Brand = strings.TrimSpace(doc.Find(`meta[property="product:brand"]`).AttrOr("content", ""))
	product.Description = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))

	// Images
	doc.Find(`meta[property="og:image"]`).Each(func(i int, s *goquery.Selection) {
		if img := s.AttrOr("content", ""); img != "" {
			product.Images = append(product.Images, img)
		}
	})

	// Sizes, when the page exposes a size picker
	doc.Find("[data-size], .size-option").Each(func(i int, s *goquery.Selection) {
		size := s.AttrOr("data-size", "")
		if size == "" {
			size = strings.TrimSpace(s.Text())
		}
		if size != "" {
			product.Sizes = append(product.Sizes, size)
		}
	})

	return product, nil
}

// parsePrice strips currency symbols and separators and parses what is
// left. Unparseable text yields 0 rather than an error; a missing price is
// not worth rejecting an import over.
func parsePrice(text string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
