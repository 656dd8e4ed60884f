// FILE: pymodule/config/source.go
package config

// Source identifies a configuration layer. Layers are merged in the order
// SourceDefault, SourceFile, SourceEnv, SourceCLI, later layers winning.
type Source string

const (
	// SourceDefault represents the schema's declared default values
	SourceDefault Source = "default"
	// SourceFile represents values loaded from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line options
	SourceCLI Source = "cli"
)

// SourceDescriptor says where a value came from: the layer, plus the file
// path, variable name or flag name when there is one. It is diagnostic only.
type SourceDescriptor struct {
	Source Source
	Origin string
}

func (d SourceDescriptor) String() string {
	if d.Origin == "" {
		return string(d.Source)
	}
	return string(d.Source) + " " + d.Origin
}
