// Command pathexport encodes robot paths into path file formats.
package main

import "github.com/npillmayer/robopath/cmd/pathexport/cmd"

func main() {
	cmd.Execute()
}
