// Command jsonmap parses, locates and formats JSON with source maps of
// every JSON Pointer in the document.
package main

import "os"

func main() {
	os.Exit(execute(newGlobalState(), os.Args[1:]))
}
