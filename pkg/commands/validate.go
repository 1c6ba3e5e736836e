package commands

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed document.schema.json
var documentSchema string

// HandleValidateCommand processes --validate commands: it checks an
// export artifact against the document schema without touching the
// store. The importer itself stays tolerant; this is a diagnostic for
// artifacts coming from elsewhere.
func HandleValidateCommand(filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	var doc interface{}
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		fmt.Printf("%s is not valid JSON: %v\n", filename, err)
		os.Exit(1)
	}

	schema, err := CompileDocumentSchema()
	if err != nil {
		fmt.Printf("Error compiling schema: %v\n", err)
		os.Exit(1)
	}

	if err := schema.Validate(doc); err != nil {
		fmt.Printf("%s does not match the document schema:\n%v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s is a valid export artifact\n", filename)
}

// CompileDocumentSchema compiles the embedded artifact schema.
func CompileDocumentSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("document.schema.json", bytes.NewReader([]byte(documentSchema))); err != nil {
		return nil, err
	}
	return compiler.Compile("document.schema.json")
}
