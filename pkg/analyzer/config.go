package analyzer

import (
	"errors"
	"fmt"
	"go/types"
	"os"
	"sync"

	"golang.org/x/tools/go/analysis"
	"gopkg.in/yaml.v3"
)

// Config declares sum types outside of source comments, for packages
// whose source cannot carry directives.
type Config struct {
	SumTypes []SumTypeConfig `yaml:"sumtypes"`
}

// SumTypeConfig is the YAML form of one directive.
type SumTypeConfig struct {
	// Package is the import path of the package declaring Type.
	Package string `yaml:"package"`
	Type    string `yaml:"type"`
	// Members are evaluated in the scope of the file declaring Type, the
	// same way as the items of a directive.
	Members      []string `yaml:"members"`
	Discriminant string   `yaml:"discriminant,omitempty"`
}

// ParseConfig decodes and validates a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for i, st := range cfg.SumTypes {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("sumtypes[%d]: %w", i, err)
		}
	}

	return &cfg, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (st SumTypeConfig) validate() error {
	switch {
	case st.Package == "":
		return errors.New("package is required")
	case st.Type == "":
		return errors.New("type is required")
	case len(st.Members) <= 1:
		return fmt.Errorf("%s needs at least two members", st.Type)
	}
	for _, m := range st.Members {
		if m == "" {
			return fmt.Errorf("%s has an empty member", st.Type)
		}
	}

	return nil
}

type configEntry struct {
	cfg *Config
	err error
}

var (
	configMu    sync.Mutex
	configCache = map[string]configEntry{}
)

// configFor loads the configuration at path once per process. Passes run
// concurrently, one per package.
func configFor(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	configMu.Lock()
	defer configMu.Unlock()
	if e, ok := configCache[path]; ok {
		return e.cfg, e.err
	}
	cfg, err := LoadConfig(path)
	configCache[path] = configEntry{cfg: cfg, err: err}

	return cfg, err
}

func configDecls(pass *analysis.Pass, cfg *Config) ([]goAugADTDecl, error) {
	if cfg == nil {
		return nil, nil
	}
	var decls []goAugADTDecl
	for _, st := range cfg.SumTypes {
		if st.Package != pass.Pkg.Path() {
			continue
		}
		obj, ok := pass.Pkg.Scope().Lookup(st.Type).(*types.TypeName)
		if !ok {
			return nil, fmt.Errorf("config: type %s not found in package %s", st.Type, st.Package)
		}
		decls = append(decls, goAugADTDecl{
			sumtype:      st.Type,
			permitted:    st.Members,
			discriminant: st.Discriminant,
			pos:          obj.Pos(),
		})
	}

	return decls, nil
}
