// Command schemagen writes the JSON schema of the pgn configuration file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/pgn/api/v1beta1/configs"
)

var outFile = flag.String("o", "configs.v1beta1.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	jsData, err := configs.Schema()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, append(jsData, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
