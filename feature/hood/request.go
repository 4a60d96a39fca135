package hood

import (
	"encoding/xml"
	"fmt"
	"sort"

	"hood-sync/feature/feed"
)

// API function names understood by the marketplace.
const (
	FunctionItemDetail = "itemDetail"
	FunctionItemInsert = "itemInsert"
	FunctionItemUpdate = "itemUpdate"
)

// Fixed marketplace defaults. Category mapping beyond the default category
// is out of scope, every listing goes into the generic category.
const (
	defaultCategoryID   = 1000
	defaultItemMode     = "classic"
	defaultCondition    = "new"
	defaultShippingTime = "Sofort verfügbar, Lieferzeit: 1-3 Tage"
	shipCostNational    = "4.95"
	shipCostEU          = "9.95"
	shipCostAT          = "9.95"
	shipCostCH          = "14.95"
)

// envelope is the request root. Escaping of attribute and element values is
// guaranteed by the XML encoder, never by hand.
type envelope struct {
	XMLName     xml.Name  `xml:"api"`
	Type        string    `xml:"type,attr"`
	Version     string    `xml:"version,attr"`
	User        string    `xml:"user,attr"`
	Password    string    `xml:"password,attr"`
	Function    string    `xml:"function"`
	AccountName string    `xml:"accountName"`
	AccountPass string    `xml:"accountPass"`
	ArticleID   string    `xml:"articleID,omitempty"`
	Items       *itemList `xml:"items"`
}

type itemList struct {
	Items []item `xml:"item"`
}

// cdata wraps free text in a literal-text section so embedded markup-like
// characters in product names and descriptions survive unmangled.
type cdata struct {
	Text string `xml:",cdata"`
}

type item struct {
	ItemMode     string      `xml:"itemMode"`
	CategoryID   int         `xml:"categoryID"`
	ItemName     cdata       `xml:"itemName"`
	Quantity     int         `xml:"quantity"`
	Condition    string      `xml:"condition"`
	Description  cdata       `xml:"description"`
	Price        string      `xml:"price"`
	EAN          string      `xml:"ean,omitempty"`
	Manufacturer string      `xml:"manufacturer,omitempty"`
	ProductURL   string      `xml:"productURL,omitempty"`
	ShippingTime string      `xml:"shippingTime"`
	ArticleID    string      `xml:"articleID"`
	PayOptions   payOptions  `xml:"payOptions"`
	ShipMethods  shipMethods `xml:"shipmethods"`
	Extras       extraList   `xml:"extras"`
	Pictures     *pictureSet `xml:"pictures"`
}

type payOptions struct {
	Options []string `xml:"option"`
}

type shipMethod struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type shipMethods struct {
	Methods []shipMethod `xml:"shipmethod"`
}

// extraList renders optional marketplace fields as direct item children.
// Keys are sorted so request documents are deterministic.
type extraList map[string]string

func (x extraList) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		el := xml.StartElement{Name: xml.Name{Local: k}}
		if err := e.EncodeElement(x[k], el); err != nil {
			return err
		}
	}
	return nil
}

// pictureSet renders the image list as numbered picture1..picture10
// sub-elements, skipping any position beyond the marketplace cap.
type pictureSet struct {
	URLs []string
}

func (p *pictureSet) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if len(p.URLs) == 0 {
		return nil
	}

	outer := xml.StartElement{Name: xml.Name{Local: "pictures"}}
	if err := e.EncodeToken(outer); err != nil {
		return err
	}
	for i, u := range p.URLs {
		if i >= feed.MaxImages {
			break
		}
		el := xml.StartElement{Name: xml.Name{Local: fmt.Sprintf("picture%d", i+1)}}
		if err := e.EncodeElement(u, el); err != nil {
			return err
		}
	}
	return e.EncodeToken(outer.End())
}

// RequestBuilder serializes products and lookup keys into the marketplace's
// XML envelope. It performs no I/O.
type RequestBuilder struct {
	accountName string
	accountPass string
}

// NewRequestBuilder creates a builder bound to one account.
func NewRequestBuilder(cfg Config) *RequestBuilder {
	return &RequestBuilder{
		accountName: cfg.AccountName,
		accountPass: cfg.AccountPass(),
	}
}

// ItemDetail builds the existence-check request for one article.
func (b *RequestBuilder) ItemDetail(articleID string) ([]byte, error) {
	return b.build(envelope{
		Function:  FunctionItemDetail,
		ArticleID: articleID,
	})
}

// ItemInsert builds the listing-creation request for a product.
func (b *RequestBuilder) ItemInsert(p *feed.Product) ([]byte, error) {
	return b.buildItem(FunctionItemInsert, p)
}

// ItemUpdate builds the listing-update request for a product.
func (b *RequestBuilder) ItemUpdate(p *feed.Product) ([]byte, error) {
	return b.buildItem(FunctionItemUpdate, p)
}

func (b *RequestBuilder) buildItem(function string, p *feed.Product) ([]byte, error) {
	return b.build(envelope{
		Function: function,
		Items:    &itemList{Items: []item{itemFromProduct(p)}},
	})
}

func (b *RequestBuilder) build(env envelope) ([]byte, error) {
	env.Type = "public"
	env.Version = "2.0"
	env.User = b.accountName
	env.Password = b.accountPass
	env.AccountName = b.accountName
	env.AccountPass = b.accountPass

	body, err := xml.MarshalIndent(env, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", env.Function, err)
	}
	return append([]byte(xml.Header), body...), nil
}

func itemFromProduct(p *feed.Product) item {
	description := p.Description
	if description == "" {
		description = p.Name
	}
	shippingTime := p.ShippingTime
	if shippingTime == "" {
		shippingTime = defaultShippingTime
	}
	shippingCost := p.ShippingCost
	if shippingCost == "" {
		shippingCost = shipCostNational
	}

	it := item{
		ItemMode:     defaultItemMode,
		CategoryID:   defaultCategoryID,
		ItemName:     cdata{Text: p.Name},
		Quantity:     p.Stock,
		Condition:    defaultCondition,
		Description:  cdata{Text: description},
		Price:        p.Price.StringFixed(2),
		EAN:          p.EAN,
		Manufacturer: p.Brand,
		ProductURL:   p.ProductURL,
		ShippingTime: shippingTime,
		ArticleID:    p.ArticleID,
		PayOptions: payOptions{
			Options: []string{"wireTransfer", "payPal", "invoice", "sofort"},
		},
		ShipMethods: shipMethods{
			Methods: []shipMethod{
				{Name: "DHLPacket_nat", Value: shippingCost},
				{Name: "DHLPacket_eu", Value: shipCostEU},
				{Name: "DHLPacket_at", Value: shipCostAT},
				{Name: "DHLPacket_ch", Value: shipCostCH},
			},
		},
		Extras: extraList(p.Extras),
	}

	if len(p.Images) > 0 {
		it.Pictures = &pictureSet{URLs: p.Images}
	}

	return it
}
