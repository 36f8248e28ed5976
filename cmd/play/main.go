// Command play runs a local game in the terminal.
//
//	move e2 e4
//	fairy F c1
//	board
//	quit
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/benbeisheim/falconchess-backend/internal/model"
)

func main() {
	log.SetHandler(cli.New(os.Stderr))
	if err := play(os.Stdin, os.Stdout, model.NewGame()); err != nil {
		log.WithError(err).Fatal("play")
	}
}

func play(in io.Reader, out io.Writer, game *model.Game) error {
	fmt.Fprint(out, game.Render())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", game.Turn())
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "board":
			fmt.Fprint(out, game.Render())
			continue
		case "move":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: move <from> <to>")
				continue
			}
			err = game.Move(fields[1], fields[2])
		case "fairy":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: fairy <F|H|f|h> <square>")
				continue
			}
			err = game.EnterFairy(fields[1], fields[2])
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
			continue
		}

		if err != nil {
			log.WithError(err).Warn(fields[0])
			continue
		}
		fmt.Fprint(out, game.Render())
		if status := game.Status(); status.Finished() {
			fmt.Fprintln(out, status)
			return nil
		}
	}
}
