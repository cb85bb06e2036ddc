// nogo plays NoGo on the console between any mix of human and scripted
// computer players.
//
//	nogo p1type p2type [height width | filename]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nogo/internal/domain/game"
	"nogo/internal/engine"
	errs "nogo/internal/errors"
	"nogo/internal/movegen"
	"nogo/internal/savefile"
)

// Exit statuses.
const (
	exitOK = iota
	exitUsage
	exitPlayerType
	exitDimension
	exitOpenFile
	exitFileContents
	exitEndOfInput
)

var exitMessages = map[int]string{
	exitUsage:        "Usage: nogo p1type p2type [height width | filename]",
	exitPlayerType:   "Invalid player type",
	exitDimension:    "Invalid board dimension",
	exitOpenFile:     "Unable to open file",
	exitFileContents: "Incorrect file contents",
	exitEndOfInput:   "End of input from user",
}

func main() {
	log := newLogger()
	defer log.Sync()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, log))
}

// newLogger writes warnings and errors to stderr; game text goes to stdout.
func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// run plays one game and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, log *zap.SugaredLogger) int {
	types, s, code := setup(args)
	if code != exitOK {
		fmt.Fprintln(stderr, exitMessages[code])
		return code
	}

	c := newConsole(s, types, movegen.Scripted{}, stdin, stdout, log)
	code = c.play()
	if code != exitOK {
		fmt.Fprintln(stderr, exitMessages[code])
	}
	return code
}

// setup validates the command line and builds the starting session.
func setup(args []string) (map[game.Stone]game.PlayerType, *engine.Session, int) {
	if len(args) != 3 && len(args) != 4 {
		return nil, nil, exitUsage
	}

	black, white := game.PlayerType(args[0]), game.PlayerType(args[1])
	if !black.Valid() || !white.Valid() {
		return nil, nil, exitPlayerType
	}
	types := map[game.Stone]game.PlayerType{game.Black: black, game.White: white}

	height, err := strconv.Atoi(args[2])
	if err != nil {
		s, code := load(args[2])
		return types, s, code
	}
	if len(args) != 4 {
		return nil, nil, exitUsage
	}
	width, err := strconv.Atoi(args[3])
	if err != nil {
		return nil, nil, exitDimension
	}
	s, err := engine.NewSession(height, width)
	if err != nil {
		return nil, nil, exitDimension
	}
	return types, s, exitOK
}

func load(path string) (*engine.Session, int) {
	snap, err := savefile.Load(path)
	if errors.Is(err, errs.ErrMalformedSave) {
		return nil, exitFileContents
	} else if err != nil {
		return nil, exitOpenFile
	}
	s, err := engine.Restore(snap)
	if err != nil {
		return nil, exitFileContents
	}
	return s, exitOK
}
