// Package unit loads and initializes compilation-unit manifests: TOML files
// listing the declarations of a unit together with its build profile.
package unit

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"zscript/ast"
	"zscript/common"
	"zscript/report"

	"github.com/pelletier/go-toml"
)

// tomlUnitFile represents the unit manifest as it is encoded in TOML
type tomlUnitFile struct {
	Unit      *tomlUnit       `toml:"unit"`
	Build     *tomlProfile    `toml:"build"`
	Classes   []*tomlClass    `toml:"classes,omitempty"`
	Globals   []*tomlVar      `toml:"globals,omitempty"`
	Arrays    []*tomlArray    `toml:"arrays,omitempty"`
	Functions []*tomlFunction `toml:"functions,omitempty"`
	Scripts   []*tomlScript   `toml:"scripts,omitempty"`
}

type tomlUnit struct {
	Name    string `toml:"name"`
	Version string `toml:"zscript-version"`
}

// tomlProfile represents the build profile as it is encoded in TOML
type tomlProfile struct {
	LogLevel    string `toml:"loglevel,omitempty"`
	DumpSymbols bool   `toml:"dump-symbols"`
	DumpLink    bool   `toml:"dump-link"`
	Parallel    bool   `toml:"parallel"`
}

type tomlClass struct {
	Name string `toml:"name"`
}

type tomlVar struct {
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Const bool   `toml:"const,omitempty"`
	Init  *int64 `toml:"init,omitempty"`
}

type tomlArray struct {
	Name     string `toml:"name"`
	ElemType string `toml:"type"`
	Size     int    `toml:"size"`
}

// tomlCall is a call site.  An argument type of `?` is unknown.
type tomlCall struct {
	Name string   `toml:"name"`
	Args []string `toml:"args,omitempty"`
}

type tomlFunction struct {
	Name       string      `toml:"name"`
	ReturnType string      `toml:"returns,omitempty"`
	Params     []*tomlVar  `toml:"params,omitempty"`
	Locals     []*tomlVar  `toml:"locals,omitempty"`
	Calls      []*tomlCall `toml:"calls,omitempty"`
}

type tomlScript struct {
	Name      string          `toml:"name"`
	Kind      string          `toml:"kind"`
	Run       *tomlFunction   `toml:"run"`
	Functions []*tomlFunction `toml:"functions,omitempty"`
	Vars      []*tomlVar      `toml:"vars,omitempty"`
	Arrays    []*tomlArray    `toml:"arrays,omitempty"`
}

// -----------------------------------------------------------------------------

// Unit is a loaded compilation unit.
type Unit struct {
	// Name is the name of the unit.
	Name string

	// Path is the path to the unit's manifest.
	Path string

	Program *ast.Program
	Profile *BuildProfile

	// NodeCount is the number of declaration nodes of the unit.
	NodeCount int
}

// BuildProfile is the build configuration of a unit.
type BuildProfile struct {
	// LogLevel is the log level of the compiler: one of the enumerated log
	// levels of the report package.
	LogLevel int

	// DumpSymbols indicates whether the symbol table diagnostics should be
	// printed after compilation.
	DumpSymbols bool

	// DumpLink indicates whether the linked program listing should be printed
	// after compilation.
	DumpLink bool

	// Parallel indicates whether functions are emitted concurrently.
	Parallel bool
}

var logLevelNames = []string{"silent", "error", "warn", "warning", "verbose"}

// LoadUnit loads and validates the unit manifest at the given path.
func LoadUnit(path string) (*Unit, error) {
	// open file
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return parseUnit(path, buff)
}

// parseUnit converts the contents of a manifest into a unit.
func parseUnit(path string, buff []byte) (*Unit, error) {
	tuf := &tomlUnitFile{}
	if err := toml.Unmarshal(buff, tuf); err != nil {
		return nil, err
	}

	if err := validateUnit(path, tuf.Unit); err != nil {
		return nil, err
	}

	prof, err := convertProfile(tuf.Build)
	if err != nil {
		return nil, fmt.Errorf("%s in unit `%s`", err.Error(), tuf.Unit.Name)
	}

	conv := newConverter()
	prog, err := conv.convertProgram(tuf)
	if err != nil {
		return nil, fmt.Errorf("unit `%s`: %s", tuf.Unit.Name, err.Error())
	}

	return &Unit{
		Name:      tuf.Unit.Name,
		Path:      path,
		Program:   prog,
		Profile:   prof,
		NodeCount: conv.arena.Len(),
	}, nil
}

// validateUnit checks that the unit header is valid
func validateUnit(path string, u *tomlUnit) error {
	if u == nil || u.Name == "" {
		return fmt.Errorf("missing unit name in manifest at %s", path)
	}

	if !common.IsValidIdentifier(u.Name) {
		return errors.New("unit name must be a valid identifier")
	}

	if u.Version != common.ZScriptVersion {
		report.ReportCompileWarning(
			path,
			nil,
			"version of unit `%s` (v%s) does not match current zscript version (v%s)", u.Name, u.Version, common.ZScriptVersion,
		)
	}

	return nil
}

// convertProfile converts the build table of a manifest into a build profile.
// A missing build table yields the default profile.
func convertProfile(prof *tomlProfile) (*BuildProfile, error) {
	if prof == nil {
		return &BuildProfile{LogLevel: report.LogLevelVerbose}, nil
	}

	bp := &BuildProfile{
		LogLevel:    report.LogLevelVerbose,
		DumpSymbols: prof.DumpSymbols,
		DumpLink:    prof.DumpLink,
		Parallel:    prof.Parallel,
	}

	if prof.LogLevel != "" {
		if !common.Contains(logLevelNames, prof.LogLevel) {
			return nil, fmt.Errorf("invalid log level `%s`", prof.LogLevel)
		}

		bp.LogLevel = report.LogLevelFromName(prof.LogLevel)
	}

	return bp, nil
}
