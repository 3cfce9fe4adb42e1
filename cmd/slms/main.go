package main

import (
	"fmt"
	"os"

	"github.com/sipi-it/slms/cmd/slms/cli"
	"github.com/sipi-it/slms/cmd/slms/cli/admin"
	"github.com/sipi-it/slms/cmd/slms/cli/server"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(server.NewReconcilerCommand())
	root.AddCommand(server.NewConfigCommand())

	root.AddCommand(admin.NewAdminCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
