package sftemplate

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render Salesforce metadata for single page apps"
	MsgBuildShort      = "Render all configured files"
	MsgPlanShort       = "List the files a build would write"
	MsgInitShort       = "Write a starter sftemplate.toml"
	MsgKindsShort      = "List the available template kinds"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten  = "Wrote %s\n"
	MsgVersionFormat  = "sftemplate version %s\n  commit: %s\n  built:  %s\n"
	MsgNothingPlanned = "No files would be written."

	// Error messages
	MsgErrConfigExists = "%s already exists, use --force to replace it"
	MsgErrNoCommand    = "no command specified"
	MsgErrBadFormat    = "invalid --format: %w"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default: sftemplate.toml in the current directory)"
	MsgFlagOutputDir  = "Directory the metadata is written to"
	MsgFlagDistDir    = "Directory zipped into the static resource"
	MsgFlagAPIVersion = "Salesforce metadata API version"
	MsgFlagAPIName    = "API name of the app and its static resource"
	MsgFlagNoMeta     = "Skip -meta.xml files and package.xml"
	MsgFlagFormat     = "Output format: auto, table, text or yaml"
	MsgFlagForce      = "Replace an existing config file"
	MsgFlagInitPath   = "Path of the config file to write"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
