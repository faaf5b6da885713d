package commands

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Inputs    []string `mapstructure:"inputs"`
	Out       string   `mapstructure:"out"`
	Format    string   `mapstructure:"format"`
	SameSex   *bool    `mapstructure:"same_sex"`
	Limit     int      `mapstructure:"limit"`
	LogDir    string   `mapstructure:"log_dir"`
	LogFormat string   `mapstructure:"log_format"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".trialgen")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
