// Command regexbuilder builds regular expressions from rules, tests them
// against sample subjects and exports them as Go source.
package main

import (
	"fmt"
	"os"

	"github.com/coregx/regexbuilder/internal/logging"
)

func main() {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		st := newStyles(os.Stderr)
		fmt.Fprintln(os.Stderr, st.fail.Render("Error:"), err)
		os.Exit(1)
	}
}
