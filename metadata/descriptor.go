// Package metadata turns ledger records into self-describing token metadata:
// a JSON descriptor embedding an SVG card image plus the record's fields as
// attributes. Everything here is pure; identical input yields identical bytes.
package metadata

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/TakuGaiax/Employee-NFT/model"
)

const (
	// JSONDataURIPrefix prefixes every token URI returned by the registries.
	JSONDataURIPrefix = "data:application/json;base64,"
	// SVGDataURIPrefix prefixes the embedded image of a descriptor.
	SVGDataURIPrefix = "data:image/svg+xml;base64,"
)

// Attribute trait names. Values are the record fields verbatim.
const (
	TraitName    = "Name"
	TraitGroup   = "Group"
	TraitMessage = "Message"
)

// Descriptor is the metadata document exposed for a token.
type Descriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// Attribute is a single trait of a descriptor.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Render builds the descriptor for rec using the given card template.
func Render(tpl Template, rec model.Record) *Descriptor {
	return &Descriptor{
		Name:        fmt.Sprintf("%s: %s", tpl.Title, rec.SubjectName),
		Description: fmt.Sprintf("%s issued to %s (%s).", tpl.Title, rec.SubjectName, rec.Group),
		Image:       SVGDataURI(tpl, rec),
		Attributes: []Attribute{
			{TraitType: TraitName, Value: rec.SubjectName},
			{TraitType: TraitGroup, Value: rec.Group},
			{TraitType: TraitMessage, Value: rec.Message},
		},
	}
}

// JSON returns the canonical encoding of the descriptor. HTML escaping is
// disabled so that field text survives byte-for-byte.
func (d *Descriptor) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// TokenURI returns the descriptor as a base64 JSON data URI.
func (d *Descriptor) TokenURI() (string, error) {
	b, err := d.JSON()
	if err != nil {
		return "", err
	}
	return JSONDataURIPrefix + base64.StdEncoding.EncodeToString(b), nil
}

// Record recovers the three record fields from the descriptor's attributes.
func (d *Descriptor) Record() (model.Record, error) {
	var rec model.Record
	seen := map[string]bool{}
	for _, a := range d.Attributes {
		switch a.TraitType {
		case TraitName:
			rec.SubjectName = a.Value
		case TraitGroup:
			rec.Group = a.Value
		case TraitMessage:
			rec.Message = a.Value
		default:
			continue
		}
		seen[a.TraitType] = true
	}
	for _, trait := range []string{TraitName, TraitGroup, TraitMessage} {
		if !seen[trait] {
			return model.Record{}, fmt.Errorf("descriptor is missing attribute '%s'", trait)
		}
	}
	return rec, nil
}

// Decode parses a token URI produced by TokenURI.
func Decode(tokenURI string) (*Descriptor, error) {
	raw, err := decodeDataURI(tokenURI, JSONDataURIPrefix)
	if err != nil {
		return nil, err
	}
	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal descriptor: %w", err)
	}
	return &d, nil
}

// DecodeImage returns the SVG document embedded in an image data URI.
func DecodeImage(dataURI string) (string, error) {
	raw, err := decodeDataURI(dataURI, SVGDataURIPrefix)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeDataURI(uri, prefix string) ([]byte, error) {
	if !strings.HasPrefix(uri, prefix) {
		return nil, errors.New("unexpected data URI scheme, want " + strings.TrimSuffix(prefix, ","))
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload in data URI: %w", err)
	}
	return raw, nil
}
