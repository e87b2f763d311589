// Command jsonene validates documents against declarative schema files and
// exports them as JSON Schema.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/loader"
)

var rootCmd = &cobra.Command{
	Use:           "jsonene",
	Short:         "Schema-driven validation for JSON and YAML documents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	checkFormats bool
	fromYAML     bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema-file> <document-file>",
	Short: "Validate a document against a schema file",
	Long: `Loads a schema document (YAML or JSON), binds the target document and
prints every validation issue with its location.

Example:
  jsonene validate person.schema.yaml person.json
  jsonene validate person.schema.yaml person.yaml --yaml --check-formats`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

var exportCmd = &cobra.Command{
	Use:   "export <schema-file>",
	Short: "Export a schema file as a draft-07 JSON Schema document",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	validateCmd.Flags().BoolVar(&checkFormats, "check-formats", false, "Enforce format assertions")
	validateCmd.Flags().BoolVar(&fromYAML, "yaml", false, "Read the document as YAML instead of JSON")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	field, err := loadSchema(args[0])
	if err != nil {
		return err
	}
	doc, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	var inst *jsonene.Instance
	if fromYAML {
		inst, err = jsonene.FromYAML(field, doc)
	} else {
		inst, err = jsonene.FromJSON(field, doc)
	}
	if err != nil {
		return reportIssues(err)
	}

	opt := jsonene.ValidateOpt{CheckFormats: checkFormats}
	if err := inst.Validate(context.Background(), opt); err != nil {
		return reportIssues(err)
	}
	fmt.Println("ok")
	return nil
}

func reportIssues(err error) error {
	iss, ok := jsonene.AsIssues(err)
	if !ok {
		return err
	}
	for _, it := range iss {
		fmt.Fprintf(os.Stderr, "%s: %s\n", it.Path, it.Message)
	}
	return fmt.Errorf("%d issue(s)", len(iss))
}

func runExport(cmd *cobra.Command, args []string) error {
	field, err := loadSchema(args[0])
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(jsonene.ExportSchema(field), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func loadSchema(path string) (jsonene.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	field, err := loader.Load(data)
	if err != nil {
		return nil, err
	}
	return field, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
