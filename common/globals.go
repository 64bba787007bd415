package common

const (
	ArkVersion       = "0.1.0"
	SrcFileExtension = ".ark"
	ModuleFileName   = "ark-mod.toml"
	HistoryFileName  = ".ark_history"
)

// IsValidIdentifier returns whether idstr is a valid ark identifier.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	for i, c := range idstr {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}

	return true
}
