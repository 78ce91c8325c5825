// Command storefront runs the skincare storefront API.
package main

import (
	"os"

	"github.com/wichananm65/skincare-storefront/internal/cli"
)

func main() {
	os.Exit(cli.New().Execute())
}
