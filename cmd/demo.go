package main

import (
	"fmt"
	"log"

	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/config"
	"tableflip.dev/cinetime/pkg/mockapi"
	"tableflip.dev/cinetime/pkg/mylist"
	"tableflip.dev/cinetime/pkg/store"
)

// Seeds the configured saved list with the demo catalog.
func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	backend, err := store.Open(settings)
	if err != nil {
		log.Fatal(err)
	}

	c := clock.Real()
	list := mylist.New(backend, mylist.Options{Clock: c})
	for _, m := range mockapi.Seed(c.Now()) {
		list.Add(mylist.FromMovie(m))
	}

	for _, it := range list.Items() {
		fmt.Printf("%s\t%s\t%s\n", it.ItemID, it.Title, it.Remaining(c.Now()))
	}
}
