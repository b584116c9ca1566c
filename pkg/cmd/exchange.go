package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/convexlab/go-cvxlean/pkg/pipeline"
	"github.com/convexlab/go-cvxlean/pkg/problem"
)

var exchangeCmd = &cobra.Command{
	Use:   "exchange [flags] problem_file",
	Short: "print the exchange document for a problem.",
	Long: `Print the exchange document (the rewrite-engine request) for a given
problem description, without generating any CvxLean source.  Useful for
driving the rewrite engine by hand.`,
	Run: runExchangeCmd,
}

func runExchangeCmd(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	prob, err := problem.LoadFile(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	document, err := pipeline.Exchange(prob, GetString(cmd, "name"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	fmt.Println(document)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(exchangeCmd)
	exchangeCmd.Flags().String("name", "", "problem name used in the document (defaults to the declared name)")
}
