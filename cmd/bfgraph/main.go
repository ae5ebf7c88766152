// cmd/bfgraph/main.go
package main

import (
	"bfgraph/internal/app"
	"bfgraph/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
