// SPDX-License-Identifier: MPL-2.0

package main

import cmd "denv-cli/cmd/denv"

func main() {
	cmd.Execute()
}
