package options

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Option keys shared by the plugin and the handlers
const (
	KeyOutputDir          = "outputDir"
	KeyFiles              = "files"
	KeyAPIVersion         = "apiVersion"
	KeyMeta               = "meta"
	KeyXMLNamespace       = "xmlNamespace"
	KeyDistDir            = "distDir"
	KeyAPIName            = "apiName"
	KeyArchiveIgnore      = "archiveIgnore"
	KeyTemplate           = "template"
	KeyTemplateFile       = "templateFile"
	KeyFilename           = "filename"
	KeyTitle              = "title"
	KeyMobile             = "mobile"
	KeyUnsupportedBrowser = "unsupportedBrowser"
	KeyController         = "controller"
	KeySharingClause      = "sharingClause"
	KeyPackage            = "package"
)

// Layer is one named set of values. Later layers override earlier ones key by
// key; nested maps are merged, anything else is replaced.
type Layer struct {
	Name   string
	Values map[string]interface{}
}

// Builder stacks layers in the order they are added
type Builder struct {
	layers []Layer
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// With adds a layer that overrides every layer added before it
func (b *Builder) With(name string, values map[string]interface{}) *Builder {
	if values != nil {
		b.layers = append(b.layers, Layer{Name: name, Values: values})
	}
	return b
}

// WithSet adds an already resolved set as a layer
func (b *Builder) WithSet(name string, s *Set) *Builder {
	if s != nil {
		b.layers = append(b.layers, Layer{Name: name, Values: s.k.Raw()})
	}
	return b
}

// Build merges the layers into a Set. The layer values are copied.
func (b *Builder) Build() (*Set, error) {
	k := koanf.New(".")
	for _, l := range b.layers {
		if err := k.Load(confmap.Provider(l.Values, ""), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s options: %w", l.Name, err)
		}
	}
	return &Set{k: k}, nil
}

// Set is a resolved option set
type Set struct {
	k *koanf.Koanf
}

// Clone returns an independent copy of the set
func (s *Set) Clone() *Set {
	return &Set{k: s.k.Copy()}
}

// Exists reports whether key has a value
func (s *Set) Exists(key string) bool {
	return s.k.Exists(key)
}

// Get returns the raw value at key
func (s *Set) Get(key string) interface{} {
	return s.k.Get(key)
}

// String returns the value at key as a string
func (s *Set) String(key string) string {
	return s.k.String(key)
}

// Bool returns the value at key as a bool
func (s *Set) Bool(key string) bool {
	return s.k.Bool(key)
}

// Strings returns the value at key as a string slice
func (s *Set) Strings(key string) []string {
	return s.k.Strings(key)
}

// Set assigns value to key
func (s *Set) Set(key string, value interface{}) error {
	return s.k.Set(key, value)
}

// Delete removes key
func (s *Set) Delete(key string) {
	s.k.Delete(key)
}

// Disabled reports whether key was explicitly set to false, as in
// controller = false
func (s *Set) Disabled(key string) bool {
	v, ok := s.k.Get(key).(bool)
	return ok && !v
}

// Map returns a nested copy of every value in the set
func (s *Set) Map() map[string]interface{} {
	return s.k.Raw()
}

// Unmarshal decodes the value at path into out using koanf struct tags
func (s *Set) Unmarshal(path string, out interface{}) error {
	return s.k.UnmarshalWithConf(path, out, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	})
}
