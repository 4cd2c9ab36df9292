package config

import "github.com/spf13/viper"

// Desensitization holds desensitization settings
type Desensitization struct {
	Enabled               bool     `json:"enabled" yaml:"enabled"`
	SensitiveFields       []string `json:"sensitive_fields" yaml:"sensitive_fields"`
	CustomPatterns        []string `json:"custom_patterns" yaml:"custom_patterns"`
	MaskChar              string   `json:"mask_char" yaml:"mask_char"`
	FixedMaskLength       int      `json:"fixed_mask_length" yaml:"fixed_mask_length"`
	EnableDefaultPatterns bool     `json:"enable_default_patterns" yaml:"enable_default_patterns"`
}

// Field names masked in log output. Matching is case-insensitive and by substring.
var defaultSensitiveFields = []string{
	"password", "passwd",
	"token", "authorization",
	"secret", "api_key", "apikey",
}

const (
	defaultMaskChar        = "*"
	defaultFixedMaskLength = 6
)

// DefaultDesensitization returns the settings used when none are configured.
func DefaultDesensitization() *Desensitization {
	return &Desensitization{
		Enabled:               true,
		SensitiveFields:       defaultSensitiveFields,
		MaskChar:              defaultMaskChar,
		FixedMaskLength:       defaultFixedMaskLength,
		EnableDefaultPatterns: true,
	}
}

// getDesensitizationConfigs reads and returns desensitization configuration
func getDesensitizationConfigs(v *viper.Viper) *Desensitization {
	if !v.IsSet("logger.desensitization") {
		return DefaultDesensitization()
	}

	config := &Desensitization{
		Enabled:               v.GetBool("logger.desensitization.enabled"),
		SensitiveFields:       v.GetStringSlice("logger.desensitization.sensitive_fields"),
		CustomPatterns:        v.GetStringSlice("logger.desensitization.custom_patterns"),
		MaskChar:              v.GetString("logger.desensitization.mask_char"),
		FixedMaskLength:       v.GetInt("logger.desensitization.fixed_mask_length"),
		EnableDefaultPatterns: true,
	}

	// Apply defaults for missing values
	if len(config.SensitiveFields) == 0 {
		config.SensitiveFields = defaultSensitiveFields
	}
	if config.MaskChar == "" {
		config.MaskChar = defaultMaskChar
	}
	if config.FixedMaskLength == 0 {
		config.FixedMaskLength = defaultFixedMaskLength
	}
	if v.IsSet("logger.desensitization.enable_default_patterns") {
		config.EnableDefaultPatterns = v.GetBool("logger.desensitization.enable_default_patterns")
	}

	return config
}
