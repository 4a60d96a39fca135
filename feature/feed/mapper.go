package feed

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxImages is the marketplace's limit of pictures per listing.
const MaxImages = 10

// SkipReason explains why a row was not mapped to a Product.
// Skips are counted, not treated as errors, and never retried.
type SkipReason string

const (
	// SkipNone means the row mapped successfully.
	SkipNone SkipReason = ""
	// SkipNoArticleID means no aliased article ID column carried a value.
	SkipNoArticleID SkipReason = "no_article_id"
	// SkipInvalidNumeric means price or stock did not parse as a number.
	SkipInvalidNumeric SkipReason = "invalid_numeric"
	// SkipMissingField means a required field was empty or out of range.
	SkipMissingField SkipReason = "missing_required_field"
)

// Product is the canonical per-row record handed to the sync loop.
// It is never constructed without a non-empty ArticleID.
type Product struct {
	ArticleID    string
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	EAN          string
	Brand        string
	ProductURL   string
	ShippingTime string
	ShippingCost string
	// Images is deduplicated, first-seen order, capped at MaxImages.
	Images []string
	// Extras carries optional marketplace fields, present only when the
	// source column was non-empty.
	Extras map[string]string
}

// Lookup-order lists for aliased feed columns. First non-empty wins.
var (
	articleIDColumns   = []string{"mpnr", "aid"}
	descriptionColumns = []string{"description", "desc"}
	extraColumns       = []string{"ppu", "pzn", "unit_pricing_measure", "unit_pricing_base_measure", "target_url"}
)

// MapRow maps one raw feed row to a Product.
// It is total: every outcome is either a Product or a SkipReason, since it
// runs once per row inside a multi-thousand-row loop.
func MapRow(row Row) (*Product, SkipReason) {
	articleID := firstNonEmpty(row, articleIDColumns)
	if articleID == "" {
		return nil, SkipNoArticleID
	}

	name := clean(row["name"])
	priceRaw := clean(row["price"])
	stockRaw := clean(row["stock"])
	if name == "" || priceRaw == "" || stockRaw == "" {
		return nil, SkipMissingField
	}

	price, err := parsePrice(priceRaw)
	if err != nil {
		return nil, SkipInvalidNumeric
	}
	stock, err := strconv.Atoi(stockRaw)
	if err != nil {
		return nil, SkipInvalidNumeric
	}
	if price.Sign() <= 0 || stock < 0 {
		return nil, SkipMissingField
	}

	p := &Product{
		ArticleID:    articleID,
		Name:         name,
		Description:  firstNonEmpty(row, descriptionColumns),
		Price:        price,
		Stock:        stock,
		EAN:          clean(row["ean"]),
		Brand:        clean(row["brand"]),
		ProductURL:   clean(row["link"]),
		ShippingTime: clean(row["dlv_time"]),
		ShippingCost: clean(row["dlv_cost"]),
		Images:       collectImages(row),
	}

	for _, col := range extraColumns {
		val := clean(row[col])
		if val == "" {
			continue
		}
		if p.Extras == nil {
			p.Extras = make(map[string]string)
		}
		p.Extras[col] = val
	}

	return p, SkipNone
}

// firstNonEmpty tries the candidate columns in order and returns the first
// cleaned non-empty value.
func firstNonEmpty(row Row, columns []string) string {
	for _, col := range columns {
		if val := clean(row[col]); val != "" {
			return val
		}
	}
	return ""
}

// clean trims whitespace and the stray surrounding quotes some exports leave
// on field values.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

// parsePrice parses a decimal with either comma or dot as the separator.
func parsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

// collectImages gathers image URLs from the singular column, the
// comma-delimited list column, and the numbered variants (image1..imageN,
// contiguous in every observed export). Values are deduplicated preserving
// first-seen order and capped at MaxImages.
func collectImages(row Row) []string {
	var out []string
	seen := make(map[string]struct{})

	appendURLs := func(raw string) {
		for _, part := range strings.Split(raw, ",") {
			u := clean(part)
			if u == "" {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			if len(out) >= MaxImages {
				return
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}

	appendURLs(row["image"])
	appendURLs(row["images"])
	for i := 1; ; i++ {
		val, ok := row["image"+strconv.Itoa(i)]
		if !ok {
			break
		}
		appendURLs(val)
	}

	return out
}
