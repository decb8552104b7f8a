package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/partsight/insight-cli/internal/config"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file populated with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !configInitForce {
			if _, err := os.Stat(configInitPath); err == nil {
				return eris.Errorf("cmd: %s already exists, rerun with --force to overwrite", configInitPath)
			}
		}

		v := viper.New()
		config.SetDefaults(v)

		var c config.Config
		if err := v.Unmarshal(&c); err != nil {
			return eris.Wrap(err, "cmd: unmarshal defaults")
		}

		body, err := yaml.Marshal(&c)
		if err != nil {
			return eris.Wrap(err, "cmd: marshal config")
		}
		header := "# partsight configuration. Every key can also be set via a\n" +
			"# PARTSIGHT_SECTION_KEY environment variable, e.g. PARTSIGHT_STORE_DRIVER.\n"
		out := append([]byte(header), body...)
		if err := os.WriteFile(configInitPath, out, 0o644); err != nil {
			return eris.Wrapf(err, "cmd: write %s", configInitPath)
		}

		cmd.Printf("wrote %s\n", configInitPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "config.yaml", "where to write the config file")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
