// Package cmd implements the command-line interface for seekbar.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd emits the JSON schema describing scenario files, for editor completion.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Display the JSON schema for timeline scenario files",
	Run: func(cmd *cobra.Command, args []string) {
		schema := jsonschema.Reflect(&timeline.Scenario{})
		cmd.Println(string(lo.Must(json.MarshalIndent(schema, "", "  "))))
	},
}
