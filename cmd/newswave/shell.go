package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
)

type shellCmd struct {
	cli *cli
}

func (cmd *shellCmd) Execute([]string) error {
	c := cmd.cli
	a, err := c.application()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, `NewsWave shell. Type "help" for commands, "exit" to quit.`)
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for c.ctx.Err() == nil {
		fmt.Fprint(c.out, prompt(a))
		if !scanner.Scan() {
			break
		}
		words, err := splitArgs(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.errOut, err)
			continue
		}
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "exit", "quit":
			return nil
		case "help":
			words = []string{"--help"}
		}
		if _, err := c.newParser(true).ParseArgs(words); err != nil {
			c.report(err)
		}
	}
	fmt.Fprintln(c.out)
	return scanner.Err()
}

func prompt(a *app) string {
	if s := a.auth.Session(); !s.IsZero() {
		return fmt.Sprintf("newswave(%s)> ", s.UserName)
	}
	return "newswave> "
}

// splitArgs splits a shell line into words. Single quotes are literal,
// double quotes allow backslash escapes, and a backslash outside quotes
// escapes the next character.
func splitArgs(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\\':
			escaped, inWord = true, true
		case quote == '"':
			if r == '"' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, inWord = r, true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if escaped {
		return nil, errors.New("unfinished escape at end of line")
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}
