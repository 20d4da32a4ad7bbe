// Command generate-schema writes the JSON schema of the elfdevice
// configuration file, for editor completion and validation.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/marmos91/elfdevice/pkg/config"
)

func main() {
	outputFile := "config.schema.json"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	f, err := os.Create(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating schema file: %v\n", err)
		os.Exit(1)
	}

	if err := writeSchema(f); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "Error writing schema file: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing schema file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("JSON schema written to %s\n", outputFile)
}

// buildSchema reflects the config struct using its yaml field names. Every
// key has a default, so nothing is marked required.
func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Title = "elfdevice Configuration"
	schema.Description = "Configuration schema for the elfdevice puzzle runner"
	schema.Version = "1.0.0"
	return schema
}

func writeSchema(w io.Writer) error {
	schemaJSON, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}
	_, err = w.Write(append(schemaJSON, '\n'))
	return err
}
