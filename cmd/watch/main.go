// Command watch asks a running server for a live battle and prints the
// state after every turn.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"pokebattle/client"
	"pokebattle/config"
	"pokebattle/game"
	"pokebattle/parser"
)

func main() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	url := fs.String("url", client.DefaultFeedURL, "live feed websocket URL")
	p1 := fs.String("p1", "pikachu", "first Pokémon")
	p2 := fs.String("p2", "charizard", "second Pokémon")
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fc, err := client.Dial(ctx, *url)
	if err != nil {
		config.Exitf("%v", err)
	}
	defer fc.Close()

	if err := fc.StartBattle(*p1, *p2); err != nil {
		config.Exitf("%v", err)
	}

	state := game.NewBattleState()
	err = fc.ReadLines(ctx, func(line string) {
		parser.ProcessLine(state, line)
		if strings.HasPrefix(line, "|-message|") || strings.HasPrefix(line, "|win|") {
			fmt.Println(parser.RenderBattleState(state))
		}
	})
	if err != nil {
		config.Exitf("%v", err)
	}
}
