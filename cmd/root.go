// Copyright © 2024 The SLIP authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slip",
	Short: "SLIP is a small Lisp interpreter",
	Long: `SLIP is a small Lisp interpreter implemented in Go.  It provides a
standalone CLI for running SLIP source files and exploring the language
interactively.

Getting started:
  slip run file.slip           Run a source file
  slip run -e "(+ 1 2)"        Evaluate an expression
  slip repl                    Start an interactive REPL

Language overview:
  SLIP is a minimal dialect built on symbols, integers, and pairs.  The
  empty value () stands in for false and every other value is true; the
  symbol t is the canonical true value.  Procedures are created with
  (lambda (args) body) and named with (define name value).  Data is
  quoted with (quote expr) or the shorthand 'expr.  Unbound symbols and
  malformed special forms evaluate to the empty value instead of
  raising errors.

Builtin procedures:
  car cdr cons = symbol? + - * write read load`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.slip.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".slip" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".slip")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
