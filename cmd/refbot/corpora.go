package main

import (
	"fmt"

	"github.com/fwojciec/refbot"
)

// Run executes the corpora command.
func (c *CorporaCmd) Run(deps *Dependencies) error {
	ids, err := deps.Lister.List()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", refbot.ErrorMessage(err))
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintln(deps.Stdout, "No corpora found. Use 'refbot scrape' to create one.")
		return nil
	}

	for _, id := range ids {
		corpus, err := deps.Corpora.Corpus(deps.Ctx, id)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%s  (unavailable)\n", id)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %d entries\n", id, len(corpus.Entries))
	}

	return nil
}
