package interactive

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"bookvert/internal/pickpolicy"
)

// Console is a line-oriented Prompter for terminal sessions. Catalogues
// are numbered from 1 in listings; candidate indexes are the zero-based
// lexical ranks, matching the index form of pick selectors.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole builds a console prompter reading operator input line by
// line from in and writing listings to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) ListCatalogues(pending []*pickpolicy.Resolution) {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Catalogue", "Candidates"})
	for i, res := range pending {
		tw.AppendRow(table.Row{i + 1, res.Catalogue.Identity.String(), len(res.Catalogue.Members)})
	}
	fmt.Fprintln(c.out, "Catalogues needing a manual pick:")
	tw.Render()
}

func (c *Console) SelectCatalogue(pending []*pickpolicy.Resolution) (int, Action) {
	for {
		fmt.Fprintf(c.out, "Catalogue to resolve [1-%d], q to quit: ", len(pending))
		line, ok := c.readLine()
		if !ok {
			return 0, ActionAbort
		}
		switch line {
		case "q", "quit":
			return 0, ActionAbort
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(pending) {
			fmt.Fprintln(c.out, "Not a listed catalogue.")
			continue
		}
		return n - 1, ActionChoose
	}
}

func (c *Console) SelectCandidate(res *pickpolicy.Resolution) (int, Action) {
	members := res.Catalogue.Members

	tw := table.NewWriter()
	tw.SetOutputMirror(c.out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Index", "Name", "Pages", "Path"})
	for i, m := range members {
		tw.AppendRow(table.Row{i, m.RawName, m.PageCount, m.Path})
	}
	fmt.Fprintf(c.out, "Candidates for catalogue %s:\n", res.Catalogue.Identity)
	tw.Render()

	for {
		fmt.Fprintf(c.out, "Candidate index [0-%d], b to go back, q to quit: ", len(members)-1)
		line, ok := c.readLine()
		if !ok {
			return 0, ActionAbort
		}
		switch line {
		case "q", "quit":
			return 0, ActionAbort
		case "b", "back":
			return 0, ActionCancel
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n >= len(members) {
			fmt.Fprintln(c.out, "Not a listed candidate.")
			continue
		}
		return n, ActionChoose
	}
}

// readLine returns the next trimmed input line; ok is false at EOF,
// which the session treats as an abort.
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(c.in.Text())), true
}
