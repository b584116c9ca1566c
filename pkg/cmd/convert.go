package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/convexlab/go-cvxlean/pkg/lean"
	"github.com/convexlab/go-cvxlean/pkg/pipeline"
	"github.com/convexlab/go-cvxlean/pkg/problem"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] problem_file",
	Short: "convert a problem description into CvxLean source.",
	Long: `Convert a given problem description (YAML with embedded S-expressions)
into a CvxLean optimisation declaration, written to stdout or to a file.`,
	Run: runConvertCmd,
}

func runConvertCmd(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	template, err := lean.ParseTemplate(GetString(cmd, "template"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	prob, err := problem.LoadFile(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	text, err := pipeline.Convert(prob, pipeline.Options{
		Name:     GetString(cmd, "name"),
		Template: template,
	})
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Only write output once the whole pipeline has succeeded.
	if output := GetString(cmd, "output"); output != "" {
		if !strings.HasSuffix(output, ".lean") {
			output += ".lean"
		}
		//
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Infof("wrote %s", output)
	} else {
		fmt.Print(text)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("name", "", "name of the generated declaration (defaults to the problem name)")
	convertCmd.Flags().String("template", "basic", "output template (basic, with_solver, with_proof)")
	convertCmd.Flags().StringP("output", "o", "", "write output to a .lean file instead of stdout")
}
