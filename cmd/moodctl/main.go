package main

import (
	"os"

	moodctlcmd "github.com/telekom/moodmail/pkg/moodctl/cmd"
)

func main() {
	root := moodctlcmd.NewRootCommand(moodctlcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
