// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Command gen-schema generates the boundary request JSON Schema files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/myedspace/lms/internal/gateway"
)

func main() {
	if err := os.MkdirAll("schemas", 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, name := range gateway.SchemaNames() {
		schema, err := gateway.GenerateSchema(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating schema %s: %v\n", name, err)
			os.Exit(1)
		}

		outPath := filepath.Join("schemas", string(name)+".schema.json")
		if err := os.WriteFile(outPath, schema, 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", outPath)
	}
}
