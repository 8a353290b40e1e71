package main

import (
	"os"

	"github.com/BlackMission/sociallogin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
