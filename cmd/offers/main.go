// Package main is the entry point for the offers CLI.
package main

import (
	"github.com/donaldgifford/offer-catalog/cmd/offers/cmd"
)

func main() {
	cmd.Execute()
}
