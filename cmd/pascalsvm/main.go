// Command pascalsvm compiles a Pascal-subset source file to SVM assembly.
package main

import (
	"os"

	"github.com/hgoncalo/pascalsvm/cmd/pascalsvm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
