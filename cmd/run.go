// Copyright © 2024 The SLIP authors

package cmd

import (
	"fmt"
	"os"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		env := lisp.NewEnv(nil)
		env.Runtime.Reader = parser.NewReader()
		env.Runtime.Library = &lisp.RelativeFileSystemLibrary{}
		rc := lisp.InitializeUserEnv(env)
		if !rc.IsNil() {
			fmt.Fprintln(os.Stderr, rc)
			os.Exit(1)
		}
		for i := range args {
			var res *lisp.LVal
			if runExpression {
				res = env.LoadString(fmt.Sprintf("arg%d", i+1), args[i])
			} else {
				res = env.LoadFile(args[i])
			}
			if res.Type == lisp.LError {
				(*lisp.ErrorVal)(res).WriteTrace(os.Stderr)
				os.Exit(1)
			}
			if runPrint {
				fmt.Println(res)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
