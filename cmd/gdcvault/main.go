// Command gdcvault scrapes the free GDC Vault listing and analyses the saved talks.
package main

import "github.com/pfrederiksen/gdc-vault/internal/cli"

func main() {
	cli.Execute()
}
