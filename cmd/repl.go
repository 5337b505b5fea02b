// Copyright © 2024 The SLIP authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/slip-lang/slip/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive SLIP REPL",
	Long: `Start an interactive read-eval-print loop for SLIP.

Line editing and in-session command history are supported via readline.
Enter exit or quit on a line by itself, or press Ctrl-D, to leave the
session.

Example REPL session:
  slip> (+ 1 2)
  3
  slip> (define square (lambda (x) (* x x)))
  ()
  slip> (square 5)
  25
  slip> '(a b . c)
  (a b . c)
  slip> exit`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(filepath.Base(os.Args[0]) + "> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
