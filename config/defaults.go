// FILE: pymodule/config/defaults.go
package config

import (
	"github.com/lixenwraith/pymodule/logger"
)

// VersionKey is the boolean key whose CLI value short-circuits resolution.
const VersionKey = "logging.version_option"

// Verbosity bounds for logging.verbose.
const (
	MinVerbose = 0
	MaxVerbose = 6
)

const templateDescription = "Template with CLI interface, configuration options in a file, logger and unit tests"

// DefaultSchema declares every key the application understands, with its
// default, constraints and environment/flag bindings.
//
//	key                                          env                          flag
//	template.template_name                       -                            -
//	template.template_version                    -                            -
//	template.template_description.text           -                            -
//	template.template_description.content-type   -                            -
//	logging.verbose                              PYMODULE_VERBOSE             --verbose
//	logging.version_option                       -                            -v
//	logging.log_prefix                           PYMODULE_LOG_PREFIX          --log-prefix
//	logging.use_string_handler                   PYMODULE_USE_STRING_HANDLER  --use-string-handler
//	parameters.param1                            PYMODULE_PARAM1              --param1
//	parameters.param2                            PYMODULE_PARAM2              --param2
//	positionals.input_file                       PYMODULE_INPUT_FILE          1st positional
//	positionals.output_file                      PYMODULE_OUTPUT_FILE         2nd positional
func DefaultSchema() *Schema {
	s := NewSchema()

	s.MustRegister("template.template_name", KeySpec{
		Kind: KindString, Default: String("pymodule"),
		Description: "Template name",
	})
	s.MustRegister("template.template_version", KeySpec{
		Kind: KindString, Default: String("3.4.1"),
		Description: "Template version",
	})
	s.MustRegister("template.template_description.text", KeySpec{
		Kind: KindString, Default: String(templateDescription),
		Description: "Template description",
	})
	s.MustRegister("template.template_description.content-type", KeySpec{
		Kind: KindString, Default: String("text/plain"),
		Allowed:     []Value{String("text/plain"), String("text/markdown")},
		Description: "Content type of the template description",
	})

	s.MustRegister("logging.verbose", KeySpec{
		Kind: KindInt, Default: Int(4),
		Range:       &Range{Min: MinVerbose, Max: MaxVerbose},
		Env:         "VERBOSE",
		Flag:        "verbose",
		Description: "Log verbosity, 0 (silent) to 6 (trace)",
	})
	s.MustRegister(VersionKey, KeySpec{
		Kind: KindBool, Default: Bool(false),
		Flag:        "v",
		Description: "Show version information and exit",
	})
	s.MustRegister("logging.log_prefix", KeySpec{
		Kind: KindBool, Default: Bool(true),
		Env:         "LOG_PREFIX",
		Flag:        "log-prefix",
		Description: "Prefix log lines with time, level and component",
	})
	s.MustRegister("logging.use_string_handler", KeySpec{
		Kind: KindBool, Default: Bool(false),
		Env:         "USE_STRING_HANDLER",
		Flag:        "use-string-handler",
		Description: "Also capture log lines in memory",
	})

	s.MustRegister("parameters.param1", KeySpec{
		Kind: KindInt, Default: Int(1),
		Env:         "PARAM1",
		Flag:        "param1",
		Description: "Parameter1",
	})
	s.MustRegister("parameters.param2", KeySpec{
		Kind: KindInt, Default: Int(2),
		Env:         "PARAM2",
		Flag:        "param2",
		Description: "Parameter2",
	})

	s.MustRegister("positionals.input_file", KeySpec{
		Kind: KindString, Default: String(""),
		Env:         "INPUT_FILE",
		Flag:        "input_file",
		Description: "Input file",
	})
	s.MustRegister("positionals.output_file", KeySpec{
		Kind: KindString, Default: String(""),
		Env:         "OUTPUT_FILE",
		Flag:        "output_file",
		Description: "Output file",
	})

	return s
}

// AppConfig is the typed view of a configuration resolved against DefaultSchema.
type AppConfig struct {
	Template    TemplateConfig    `toml:"template"`
	Logging     LoggingConfig     `toml:"logging"`
	Parameters  ParametersConfig  `toml:"parameters"`
	Positionals PositionalsConfig `toml:"positionals"`
}

type TemplateConfig struct {
	Name        string            `toml:"template_name"`
	Version     string            `toml:"template_version"`
	Description DescriptionConfig `toml:"template_description"`
}

type DescriptionConfig struct {
	Text        string `toml:"text"`
	ContentType string `toml:"content-type"`
}

type LoggingConfig struct {
	Verbose          int  `toml:"verbose"`
	VersionOption    bool `toml:"version_option"`
	LogPrefix        bool `toml:"log_prefix"`
	UseStringHandler bool `toml:"use_string_handler"`
}

// LoggerOptions converts the logging section into logger options. A string
// sink is attached when use_string_handler is set.
func (l LoggingConfig) LoggerOptions(component string) logger.Options {
	opts := logger.Options{
		Verbose:   l.Verbose,
		Prefix:    l.LogPrefix,
		Component: component,
	}
	if l.UseStringHandler {
		opts.Sink = logger.NewStringSink()
	}
	return opts
}

type ParametersConfig struct {
	Param1 int64 `toml:"param1"`
	Param2 int64 `toml:"param2"`
}

type PositionalsConfig struct {
	InputFile  string `toml:"input_file"`
	OutputFile string `toml:"output_file"`
}
