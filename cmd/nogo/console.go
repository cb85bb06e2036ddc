package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nogo/internal/domain/game"
	"nogo/internal/engine"
	"nogo/internal/movegen"
	"nogo/internal/render"
	"nogo/internal/savefile"
)

// maxInputLen is the longest accepted input line, newline included.
const maxInputLen = 70

type console struct {
	s     *engine.Session
	types map[game.Stone]game.PlayerType
	moves movegen.Source
	in    *bufio.Reader
	out   io.Writer
	log   *zap.SugaredLogger
}

func newConsole(s *engine.Session, types map[game.Stone]game.PlayerType, moves movegen.Source, in io.Reader, out io.Writer, log *zap.SugaredLogger) *console {
	return &console{
		s:     s,
		types: types,
		moves: moves,
		in:    bufio.NewReader(in),
		out:   out,
		log:   log,
	}
}

// play runs the game loop until someone wins or input ends.
func (c *console) play() int {
	c.drawBoard()
	c.s.Start()

	for {
		line, ok, err := c.nextInput()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Errorw("reading input failed", "error", err)
			}
			return exitEndOfInput
		}
		if !ok || line == "" {
			continue
		}

		switch line[0] {
		case 'w':
			c.save(line[1:])
			continue
		case '~':
			if err := render.GroupIDs(c.out, c.s.GroupIDs()); err != nil {
				c.log.Warnw("writing group ids failed", "error", err)
			}
			continue
		}

		row, col, ok := parseMove(line)
		if !ok {
			continue
		}
		res, err := c.s.ApplyMove(row, col)
		if err != nil {
			continue
		}
		c.drawBoard()
		if res.Status == game.MoveGameOver {
			fmt.Fprintf(c.out, "Player %s wins\n", res.Winner)
			return exitOK
		}
	}
}

// nextInput returns the next command for the player to move. ok is false
// when there is nothing to play this iteration: a taken scripted square or
// an over-long line.
func (c *console) nextInput() (line string, ok bool, err error) {
	colour := c.s.CurrentPlayer()
	if c.types[colour] == game.Computer {
		cand, err := c.moves.NextCandidate(c.s)
		if err != nil {
			return "", false, err
		}
		if !cand.Playable {
			return "", false, nil
		}
		line = fmt.Sprintf("%d %d", cand.Row, cand.Col)
		fmt.Fprintf(c.out, "Player %s: %s\n", colour, line)
		return line, true, nil
	}

	fmt.Fprintf(c.out, "Player %s> ", colour)
	raw, err := c.in.ReadString('\n')
	if err != nil {
		return "", false, err
	}
	if len(raw) > maxInputLen {
		return "", false, nil
	}
	return strings.TrimRight(raw, "\r\n"), true, nil
}

func (c *console) save(path string) {
	if err := savefile.Save(path, c.s.Serialize()); err != nil {
		c.log.Warnw("saving game failed", "path", path, "error", err)
	}
}

func (c *console) drawBoard() {
	if err := render.Board(c.out, c.s.Rows()); err != nil {
		c.log.Warnw("drawing board failed", "error", err)
	}
}

// parseMove reads "row col".
func parseMove(line string) (row, col int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, false
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}
