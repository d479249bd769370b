package metadata

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/TakuGaiax/Employee-NFT/model"
)

// Template is the fixed visual layout of a rendered card.
type Template struct {
	Title      string // Heading printed on the card and used in the descriptor name
	Background string // Fill colour of the card
	Accent     string // Colour of the heading band
}

var (
	EmployeeIDTemplate = Template{
		Title:      "Employee ID",
		Background: "#f4f1ea",
		Accent:     "#1d3557",
	}
	BusinessCardTemplate = Template{
		Title:      "Business Card",
		Background: "#ffffff",
		Accent:     "#e76f51",
	}
)

// SVG renders rec as a standalone SVG document. Field text is XML-escaped, so
// an XML decoder recovers it verbatim.
func SVG(tpl Template, rec model.Record) []byte {
	var b bytes.Buffer
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="xMinYMin meet" viewBox="0 0 350 220">`)
	b.WriteString(`<style>.title{font-family:sans-serif;font-size:16px;font-weight:bold;fill:#ffffff}`)
	b.WriteString(`.name{font-family:sans-serif;font-size:22px;fill:#222222}`)
	b.WriteString(`.body{font-family:sans-serif;font-size:14px;fill:#444444}</style>`)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" rx="12" fill="%s"/>`, escape(tpl.Background))
	fmt.Fprintf(&b, `<rect width="100%%" height="44" rx="12" fill="%s"/>`, escape(tpl.Accent))
	fmt.Fprintf(&b, `<text x="20" y="28" class="title">%s</text>`, escape(tpl.Title))
	fmt.Fprintf(&b, `<text x="20" y="96" class="name">%s</text>`, escape(rec.SubjectName))
	fmt.Fprintf(&b, `<text x="20" y="130" class="body">%s</text>`, escape(rec.Group))
	fmt.Fprintf(&b, `<text x="20" y="170" class="body">%s</text>`, escape(rec.Message))
	b.WriteString(`</svg>`)
	return b.Bytes()
}

// SVGDataURI returns SVG(tpl, rec) as a base64 data URI.
func SVGDataURI(tpl Template, rec model.Record) string {
	return SVGDataURIPrefix + base64.StdEncoding.EncodeToString(SVG(tpl, rec))
}

func escape(s string) string {
	var b bytes.Buffer
	// EscapeText only fails when the writer does; bytes.Buffer never does.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
