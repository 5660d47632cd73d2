package sftemplate

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/jdcrensh/sftemplate/pkg/compiler"
	"github.com/jdcrensh/sftemplate/pkg/config"
	"github.com/jdcrensh/sftemplate/pkg/logging"
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/plugin"
	"github.com/jdcrensh/sftemplate/pkg/render"
	"github.com/jdcrensh/sftemplate/pkg/style"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// buildFlags are the option overrides shared by build and plan
type buildFlags struct {
	configPath string
	outputDir  string
	distDir    string
	apiVersion string
	apiName    string
	noMeta     bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", MsgFlagOutputDir)
	cmd.Flags().StringVar(&f.distDir, "dist-dir", "", MsgFlagDistDir)
	cmd.Flags().StringVar(&f.apiVersion, "api-version", "", MsgFlagAPIVersion)
	cmd.Flags().StringVar(&f.apiName, "api-name", "", MsgFlagAPIName)
	cmd.Flags().BoolVar(&f.noMeta, "no-meta", false, MsgFlagNoMeta)
}

// overrides returns the flags the user actually set
func (f *buildFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	out := make(map[string]interface{})
	if cmd.Flags().Changed("output-dir") {
		out[options.KeyOutputDir] = f.outputDir
	}
	if cmd.Flags().Changed("dist-dir") {
		out[options.KeyDistDir] = f.distDir
	}
	if cmd.Flags().Changed("api-version") {
		out[options.KeyAPIVersion] = f.apiVersion
	}
	if cmd.Flags().Changed("api-name") {
		out[options.KeyAPIName] = f.apiName
	}
	if f.noMeta {
		out[options.KeyMeta] = false
	}
	return out
}

// prepare loads the configuration and applies the plugin to a new compiler
func (f *buildFlags) prepare(cmd *cobra.Command, fs afero.Fs, dryRun bool) (*config.Loaded, *plugin.Plugin, *compiler.Compiler, error) {
	loaded, err := config.Load(f.configPath, f.overrides(cmd))
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := plugin.New(loaded.Raw(), plugin.WithFs(fs))
	if err != nil {
		return nil, nil, nil, err
	}

	c := compiler.New(compiler.Options{
		Writer: render.New(fs),
		DryRun: dryRun,
	})
	if err := p.Apply(c); err != nil {
		return nil, nil, nil, err
	}
	return loaded, p, c, nil
}

func newBuildCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.build")
			fs := afero.NewOsFs()

			loaded, p, c, err := flags.prepare(cmd, fs, false)
			if err != nil {
				return err
			}

			stats, err := c.Run(cmd.Context())
			if err != nil {
				return err
			}

			outputDir := p.Options().String(options.KeyOutputDir)
			summary := style.BuildSummary{
				ConfigSource: loaded.String(),
				OutputDir:    outputDir,
				Files:        stats.Files,
				Emitted:      stats.Emitted,
				Duration:     stats.Duration,
			}

			manifestPath := filepath.Join(outputDir, "package.xml")
			if data, err := afero.ReadFile(fs, manifestPath); err == nil {
				m, err := manifest.Parse(bytes.NewReader(data))
				if err != nil {
					logger.Warn().Err(err).Str("path", manifestPath).Msg("Could not read back manifest")
				} else {
					summary.Manifest = m
				}
			}

			if stats.Hooks > 0 {
				if dest, err := p.ArchivePath(); err == nil {
					summary.Archive = dest
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), style.RenderBuild(summary))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
