package common

// ZScriptVersion is the current compiler version as a string.
const ZScriptVersion string = "0.1.0"

// UnitFileExt is the file extension for compilation unit manifests.
const UnitFileExt string = ".toml"

// DefaultUnitFileName is the name of the manifest written by `zsc init`.
const DefaultUnitFileName string = "zscript-unit.toml"

// IsValidIdentifier returns whether a string is a valid ZScript identifier.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
