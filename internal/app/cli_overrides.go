package app

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":        "log_level",
	"max-body-length":  "max_body_length",
	"log-backend":      "log.backend",
	"log-format":       "log.format",
	"log-threshold":    "log.level",
	"addr":             "server.addr",
	"shutdown-timeout": "server.shutdown_timeout",
}

// ApplyFlagOverrides copies explicitly set flags into v with their typed
// values, so strict decoding sees an int for an int flag. --no-color is
// inverted onto colorize.
func ApplyFlagOverrides(flags *pflag.FlagSet, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		val, err := typedValue(flags, f)
		if err != nil {
			return err
		}
		v.Set(key, val)
	}

	if f := flags.Lookup("no-color"); f != nil && f.Changed {
		noColor, err := flags.GetBool("no-color")
		if err != nil {
			return err
		}
		v.Set("colorize", !noColor)
	}
	return nil
}

func typedValue(flags *pflag.FlagSet, f *pflag.Flag) (any, error) {
	switch f.Value.Type() {
	case "int":
		return flags.GetInt(f.Name)
	case "bool":
		return flags.GetBool(f.Name)
	case "duration":
		return flags.GetDuration(f.Name)
	default:
		return f.Value.String(), nil
	}
}
