// File: main.go
package main

import "github.com/blackbirdforensics/croweye/cmd"

func main() {
	cmd.Execute()
}
