package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configKeyAnnotation marks a flag as the command line form of an application config key.
const configKeyAnnotation = "vercheck_config_key"

func bindFlag(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(fmt.Errorf("unable to annotate flag '%s': %w", name, err))
	}
}

// bindFlags binds every annotated flag of the executing command to its config key. Commands share keys
// (e.g. --fixture), so binding happens only once the command to run is known.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(flag *pflag.Flag) {
		keys, ok := flag.Annotations[configKeyAnnotation]
		if !ok || len(keys) == 0 || err != nil {
			return
		}
		if bindErr := v.BindPFlag(keys[0], flag); bindErr != nil {
			err = fmt.Errorf("unable to bind flag '%s': %w", flag.Name, bindErr)
		}
	})
	return err
}
