package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"

	"github.com/schoolctl/schoolctl/cli"
	"github.com/schoolctl/schoolctl/internal/config"
)

func main() {
	if len(os.Args) == 1 {
		displayAppname(config.New().GetAppName())
	}
	os.Exit(cli.Execute())
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
