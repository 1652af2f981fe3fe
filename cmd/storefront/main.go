// Command storefront serves the storefront's server-side rendered pages,
// its JSON catalog endpoints and its client assets.
//
// Configuration is read from environment variables and any .env file;
// confer package ranger for the list.
package main

import (
	"log"

	"github.com/xy-planning-network/storefront/ranger"
)

func main() {
	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Error(err.Error(), nil)
		log.Fatal(err)
	}
}
