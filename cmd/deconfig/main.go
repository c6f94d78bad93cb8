// FILE: lixenwraith/deconfig/cmd/deconfig/main.go

// Command deconfig resolves ad-hoc field declarations against environment,
// .env, INI and TOML/YAML/JSON sources and prints the result.
//
//	deconfig resolve --env-prefix MYAPP_ --file config.toml \
//	    --field server.port:int --field server.hosts:strings:optional
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
