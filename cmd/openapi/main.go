package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Imdachu/imf-gadget/docs"
	"github.com/Imdachu/imf-gadget/handlers"
)

func main() {
	out := flag.String("o", "", "write the document to this file instead of stdout")
	flag.Parse()

	data, err := docs.YAML(handlers.OpenAPIDocument())
	if err != nil {
		log.Fatalf("Failed to render API document: %v", err)
	}

	if *out == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("📄 Wrote %s", *out)
}
