package stmdeploy

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort           = "Deploy, build and flash generated models on STM32 boards"
	MsgBuildShort          = "Update, build and flash the C project of a board"
	MsgProbesShort         = "List the attached ST-LINK probes"
	MsgConfigShort         = "Inspect board configurations"
	MsgConfigShowShort     = "Print a board configuration after defaults and overrides"
	MsgConfigDefaultsShort = "Print the defaults applied to every build configuration"
	MsgVersionShort        = "Print version information"
	MsgCompletionShort     = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format (auto, term, text, json)"
	MsgFlagBoard       = "Board file path or board name"
	MsgFlagConfig      = "Build configuration to deploy (default: the board default)"
	MsgFlagGenerated   = "Directory holding the generated files"
	MsgFlagToolVersion = "Version of the tool that generated the files; boards declaring another tool_version are skipped"
	MsgFlagUserFiles   = "File or directory whose files take precedence over generated ones (repeatable)"
	MsgFlagParams      = "TOML or YAML file with the parameters of render templates"
	MsgFlagTemplates   = "Directory holding render templates"
	MsgFlagNoFlash     = "Do not flash the board"
	MsgFlagNoTemplates = "Do not update the source tree"
	MsgFlagSerial      = "Serial number of the ST-LINK probe to flash through"
	MsgFlagStrict      = "Fail when some template entries could not be applied"
	MsgFlagDryRun      = "Log commands instead of running them"
	MsgFlagOutput      = "Configuration output format (toml, yaml, json)"

	// Status messages
	MsgVersionFormat = "stmdeploy version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrLoadBoard    = "failed to load board: %w"
	MsgErrOutputFormat = "unsupported output format: %s"
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
)
