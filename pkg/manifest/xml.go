package manifest

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// Manifest is a parsed package.xml
type Manifest struct {
	Version string
	Package *Package
}

// Parse reads a package.xml document
func Parse(r io.Reader) (*Manifest, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	root := doc.SelectElement("Package")
	if root == nil {
		return nil, fmt.Errorf("manifest has no <Package> root element")
	}

	m := &Manifest{Package: New()}
	for _, t := range root.SelectElements("types") {
		name := t.SelectElement("name")
		if name == nil {
			return nil, fmt.Errorf("manifest <types> block without <name>")
		}
		typeName := strings.TrimSpace(name.Text())
		for _, member := range t.SelectElements("members") {
			m.Package.Add(typeName, strings.TrimSpace(member.Text()))
		}
	}
	if v := root.SelectElement("version"); v != nil {
		m.Version = strings.TrimSpace(v.Text())
	}
	return m, nil
}

// Normalize re-parses an XML document and writes it back with consistent
// indentation. Malformed input is returned as an error.
func Normalize(data []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	doc.Indent(4)
	return doc.WriteToBytes()
}
