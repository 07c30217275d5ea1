// Package cmd is for command line interactions with the vsdalign application
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tikz/vsdalign/config"
	"github.com/tikz/vsdalign/store"
)

var (
	cfgFile string

	// settings resolved before any subcommand runs
	conf config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "vsdalign",
	Short: `Superpose the structures of aligned voltage sensor domains onto their references
and map aligned zones onto structure residues`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (YAML)")
	rootCmd.PersistentFlags().String("db-driver", store.DriverSQLite, "database driver, sqlite or postgres")
	rootCmd.PersistentFlags().String("db-dsn", "vsd.db", "database file or connection string")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	// Bind the parameters to viper
	viper.BindPFlag("db.driver", rootCmd.PersistentFlags().Lookup("db-driver"))
	viper.BindPFlag("db.dsn", rootCmd.PersistentFlags().Lookup("db-dsn"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads the settings file, if any, and decodes the settings.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read settings: %w", err)
		}
	}

	c, err := config.New(viper.GetViper())
	if err != nil {
		return err
	}
	conf = c

	return nil
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	return store.Open(conf.DB)
}

// withStore runs fn against the configured database and closes it afterwards.
func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(ctx, st)
}
