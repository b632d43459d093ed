package utils

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

var activeSpinner *spinner.Spinner

func DrawBanner() {
	banner := figure.NewFigure("cloud advisor", "", true)
	banner.Print()
	fmt.Println(text.FgHiBlue.Sprint(" multi-cloud cost optimization"))
	fmt.Println()
}

func StartSpinner() {
	activeSpinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	activeSpinner.Suffix = " gathering cloud data..."
	activeSpinner.Start()
}

func StopSpinner() {
	if activeSpinner != nil {
		activeSpinner.Stop()
		activeSpinner = nil
	}
}
