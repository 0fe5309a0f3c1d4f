package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pterm/pterm"
)

var (
	replSettings settings
	replInit     string
)

func replCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runREPL,
		UsageLine: "repl [options] grammar-file",
		Short:     "parse sentences interactively",
		Long: `
Start an interactive session, where users may enter sentences to be parsed
with a grammar. Lines starting with ':' are commands:

 :tree     toggle drawing of parse trees
 :grammar  print a report on the grammar
 :quit     end the session

Quit with <ctrl>D.
`,
		Flag: *flag.NewFlagSet("repl", flag.ExitOnError),
	}
	replSettings.register(&cmd.Flag)
	cmd.Flag.StringVar(&replInit, "init", "", "File of sentences to parse before going interactive")
	cmd.Flag.StringVar(&treebankPath, "db", "", "Treebank file to look up and store parse results")
	return cmd
}

func runREPL(cmd *commander.Command, args []string) error {
	if len(args) != 1 {
		cmd.Usage()
		return fmt.Errorf("expected exactly one grammar file")
	}
	setup(&replSettings)
	pterm.Info.Println("Welcome to the PCKY REPL")
	sess, err := newSession(args[0], treebankPath, os.Stdout)
	if err != nil {
		return err
	}
	defer sess.close()
	sess.drawTrees = true
	repl, err := readline.New("pcky> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{sess: sess, repl: repl}
	intp.loadInitFile(replInit)
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// Intp is our interactive parsing session.
type Intp struct {
	sess *session
	repl *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	if err := intp.sess.parseAll(f); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if intp.Eval(line) {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a sentence, given on a line by itself.
// It returns true if the user wants to quit.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":tree":
		intp.sess.drawTrees = !intp.sess.drawTrees
		pterm.Info.Println(fmt.Sprintf("drawing trees: %v", intp.sess.drawTrees))
		return false
	case ":grammar":
		describe(intp.sess.out, intp.sess.parser.Grammar())
		return false
	}
	if strings.HasPrefix(line, ":") {
		pterm.Error.Println(fmt.Sprintf("unknown command %s", line))
		return false
	}
	if err := intp.sess.parse(line); err != nil {
		pterm.Error.Println(err.Error())
	}
	return false
}
