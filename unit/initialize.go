package unit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"zscript/common"

	"github.com/pelletier/go-toml"
)

// InitUnit creates a new unit manifest with the given name in the given
// directory and returns the path to it.  The manifest declares a small
// starter program.
func InitUnit(name, dir string) (string, error) {
	unitFilePath := filepath.Join(dir, common.DefaultUnitFileName)

	// check to see if a manifest already exists
	_, err := os.Stat(unitFilePath)
	if err == nil {
		return "", errors.New("unit file already exists")
	}

	if !os.IsNotExist(err) {
		return "", fmt.Errorf("unit file error: %s", err.Error())
	}

	if !common.IsValidIdentifier(name) {
		return "", errors.New("unit name must be a valid identifier")
	}

	// encode and save unit to file
	f, err := os.Create(unitFilePath)
	if err != nil {
		return "", fmt.Errorf("error creating unit file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(newStarterUnit(name)); err != nil {
		return "", fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return unitFilePath, nil
}

// newStarterUnit creates the contents of a new manifest.
func newStarterUnit(name string) *tomlUnitFile {
	speed, maxSpeed := int64(0), int64(4)

	return &tomlUnitFile{
		Unit: &tomlUnit{
			Name:    name,
			Version: common.ZScriptVersion,
		},
		Build: &tomlProfile{
			LogLevel: "verbose",
			Parallel: true,
		},
		Globals: []*tomlVar{
			{Name: "MaxSpeed", Type: "float", Const: true, Init: &maxSpeed},
		},
		Functions: []*tomlFunction{
			{
				Name:       "clamp",
				ReturnType: "float",
				Params:     []*tomlVar{{Name: "x", Type: "float"}},
			},
		},
		Scripts: []*tomlScript{
			{
				Name: "Mover",
				Kind: "ffc",
				Run: &tomlFunction{
					Name:  "run",
					Calls: []*tomlCall{{Name: "clamp", Args: []string{"float"}}},
				},
				Vars: []*tomlVar{
					{Name: "speed", Type: "float", Init: &speed},
				},
			},
		},
	}
}
