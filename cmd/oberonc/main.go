// Command oberonc translates Oberon-family module ASTs to CIL.
package main

import "github.com/seanpm2001/Oberon/internal/cmd"

func main() {
	cmd.Execute()
}
