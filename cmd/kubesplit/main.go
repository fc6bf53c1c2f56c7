// kubesplit splits a multi-document Kubernetes manifest stream into one file
// per resource.
package main

import (
	"os"

	"github.com/hupe1980/kubesplit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
