package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neoscan/runtime/internal/dataset"
	"github.com/neoscan/runtime/internal/logger"
	"github.com/neoscan/runtime/pkg/neo"
)

var (
	inspectDesignation string
	inspectName        string
	inspectFull        bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Look up a single near-Earth object",
	Long: `Look up one near-Earth object by primary designation or by IAU name
and print its details. With --full, its known close approaches are listed
as well.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if (inspectDesignation == "") == (inspectName == "") {
			logger.Error("exactly one of --designation or --name is required")
			os.Exit(ExitCriteriaError)
		}

		db, err := dataset.Load(neofile, cadfile)
		if err != nil {
			logger.Error("failed to load dataset", "error", err.Error())
			os.Exit(ExitDatasetError)
		}

		var (
			object *neo.NearEarthObject
			found  bool
		)
		if inspectDesignation != "" {
			object, found = db.FindDesignation(inspectDesignation)
		} else {
			object, found = db.FindName(inspectName)
		}
		if !found {
			logger.Error("no matching object in the dataset",
				"designation", inspectDesignation, "name", inspectName)
			os.Exit(ExitLookupError)
		}

		fmt.Println(object)
		if inspectFull {
			for _, approach := range object.Approaches {
				fmt.Printf("- %s\n", approach)
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectDesignation, "designation", "d", "",
		"primary designation of the object to look up")
	inspectCmd.Flags().StringVarP(&inspectName, "name", "n", "",
		"IAU name of the object to look up")
	inspectCmd.Flags().BoolVar(&inspectFull, "full", false,
		"also list the object's close approaches")
}
