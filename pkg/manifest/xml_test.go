// pkg/manifest/xml_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: etree
// PURPOSE: Test manifest parsing and XML normalisation

package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `<?xml version="1.0" encoding="UTF-8"?>
<Package xmlns="http://soap.sforce.com/2006/04/metadata">
  <types>
    <members>SinglePageApp</members>
    <name>ApexPage</name>
  </types>
  <types>
    <members>SinglePageAppController</members>
    <members>SinglePageAppControllerTest</members>
    <name>ApexClass</name>
  </types>
  <version>36.0</version>
</Package>`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "36.0", m.Version)
	assert.Equal(t, []string{"SinglePageApp"}, m.Package.Members(TypeApexPage))
	assert.Equal(t, []string{"SinglePageAppController", "SinglePageAppControllerTest"}, m.Package.Members(TypeApexClass))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", "<Package><types>"},
		{"wrong root", "<ApexPage/>"},
		{"types without name", "<Package><types><members>A</members></types></Package>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestNormalize(t *testing.T) {
	in := []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<ApexClass xmlns=\"x\">\n<apiVersion>36.0</apiVersion>\n\n\n<status>Active</status></ApexClass>")

	out, err := Normalize(in)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, "\n    <apiVersion>36.0</apiVersion>\n")
	assert.Contains(t, s, "\n    <status>Active</status>\n")
	assert.NotContains(t, s, "\n\n")
}

func TestNormalize_Malformed(t *testing.T) {
	_, err := Normalize([]byte("<ApexClass><status>Active</ApexClass>"))
	assert.Error(t, err)

	_, err = Normalize([]byte("   "))
	assert.Error(t, err)
}
