// Logohue as a command line tool (CLI) is documented in the project's README:
// https://github.com/BitPonyLLC/logohue#readme
package main

import (
	"os"

	"github.com/BitPonyLLC/logohue/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
