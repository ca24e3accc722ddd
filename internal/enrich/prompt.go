package enrich

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"scribe/internal/works"
)

const webSearchURL = "https://www.google.com/search?"

// Prompter is a LinkFinder that asks the user to run the search by hand and
// paste the page URL. An empty answer skips the work.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	site string
}

var _ works.LinkFinder = (*Prompter)(nil)

// NewPrompter reads answers from in and writes prompts to out. site restricts
// the suggested search, e.g. "imslp.org".
func NewPrompter(in io.Reader, out io.Writer, site string) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, site: site}
}

// SearchURL is the web search a user is asked to perform for query.
func (p *Prompter) SearchURL(query string) string {
	q := query
	if p.site != "" {
		q = "site:" + p.site + " " + query
	}
	return webSearchURL + url.Values{"q": {q}}.Encode()
}

// Search prompts for the page matching query.
func (p *Prompter) Search(ctx context.Context, query string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "Perform this search and paste link related to work:\n%s\n", p.SearchURL(query))
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" && err == io.EOF {
		return "", fmt.Errorf("read answer: %w", io.ErrUnexpectedEOF)
	}
	return answer, nil
}
