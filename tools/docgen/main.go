// Package main generates the offers CLI reference from the cobra command tree,
// as markdown pages with front matter or as man pages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/offer-catalog/cmd/offers/cmd"
)

const frontMatter = `---
title: %q
slug: %s
---

`

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "output format: markdown or man")
	flag.Parse()

	if err := run(*output, *format); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("CLI %s docs generated in %s/\n", *format, *output)
}

func run(output, format string) error {
	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	switch format {
	case "markdown":
		if err := doc.GenMarkdownTreeCustom(root, output, prepend, linkHandler); err != nil {
			return fmt.Errorf("generating markdown: %w", err)
		}
	case "man":
		header := &doc.GenManHeader{Title: "OFFERS", Section: "1", Source: "offer-catalog"}
		if err := doc.GenManTree(root, header, output); err != nil {
			return fmt.Errorf("generating man pages: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want markdown or man)", format)
	}
	return nil
}

// prepend writes front matter naming the command, e.g. "offers history list".
func prepend(filename string) string {
	slug := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return fmt.Sprintf(frontMatter, strings.ReplaceAll(slug, "_", " "), slug)
}

// linkHandler links sibling pages by slug so the docs work under any site root.
func linkHandler(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "/"
}
