package config

import (
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

type starterFile struct {
	Template string `toml:"template"`
	APIName  string `toml:"apiName,omitempty"`
	Title    string `toml:"title,omitempty"`
	Mobile   bool   `toml:"mobile,omitempty"`
}

type starterConfig struct {
	OutputDir     string        `toml:"outputDir"`
	DistDir       string        `toml:"distDir"`
	APIName       string        `toml:"apiName"`
	APIVersion    string        `toml:"apiVersion"`
	Meta          bool          `toml:"meta"`
	ArchiveIgnore []string      `toml:"archiveIgnore"`
	Files         []starterFile `toml:"files"`
}

const starterHeader = `# sftemplate build configuration
#
# Every key is also readable from the environment as SFTEMPLATE_<KEY>, for
# example SFTEMPLATE_OUTPUT_DIR, and any extra key is passed to templates.

`

// Starter returns a starter config file for a single page app named apiName
func Starter(apiName string) ([]byte, error) {
	if apiName == "" {
		apiName = "SinglePageApp"
	}

	body, err := toml.Marshal(starterConfig{
		OutputDir:     "src",
		DistDir:       "dist",
		APIName:       apiName,
		APIVersion:    "36.0",
		Meta:          true,
		ArchiveIgnore: []string{"*.map"},
		Files: []starterFile{
			{Template: "SinglePageApp", APIName: apiName, Title: "Visualforce App"},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode starter config")
	}
	return append([]byte(starterHeader), body...), nil
}
