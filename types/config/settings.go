package config

// Settings configures which documents are linted and which schemas they may reference.
type Settings struct {
	// Include lists glob patterns of documents to lint. Empty means every document.
	Include []string `yaml:"include" json:"include"`
	// AllowedSchemas restricts the accepted `odr:schema` values. Empty means any.
	AllowedSchemas []string `yaml:"allowed_schemas" json:"allowedSchemas"`
}

func SettingDefaults() Settings {
	return Settings{
		Include:        []string{"doc/odr/**/*.md", "docs/odr/**/*.md"},
		AllowedSchemas: []string{},
	}
}

// ApplySettings fills every field that was left unset with its default.
// A field that is set to an empty list stays empty.
func ApplySettings(input *Settings) Settings {
	result := SettingDefaults()
	if input == nil {
		return result
	}

	if input.Include != nil {
		result.Include = input.Include
	}
	if input.AllowedSchemas != nil {
		result.AllowedSchemas = input.AllowedSchemas
	}

	return result
}
