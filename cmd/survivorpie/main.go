// survivorpie computes and draws the survival split of Titanic passengers
// for a selection of sex, age range, port of embarkation and class.
package main

import (
	"os"

	"github.com/hupe1980/survivorpie/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
