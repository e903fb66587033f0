package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/render/nodelink"
)

func ExampleToDOT() {
	events := []event.Event{
		event.Station{Track: 0, Text: "Depot"},
		event.Station{Track: 0, Text: "Harbour"},
	}

	dot, err := nodelink.ToDOT(events, nodelink.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "s0" -> "s1";
}
