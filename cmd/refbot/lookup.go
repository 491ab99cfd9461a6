package main

import (
	"fmt"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/bot"
	"github.com/fwojciec/refbot/card"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	pages, err := resolvePages(deps, c.Corpus, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", refbot.ErrorMessage(err))
		return err
	}

	for i, page := range pages {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		printPage(deps, page)
	}
	return nil
}

// resolvePages runs the lookup pipeline and returns the card pages the
// chat transport would deliver.
func resolvePages(deps *Dependencies, corpusID, query string) ([]*refbot.Page, error) {
	query = bot.NormalizeQuery(corpusID, query)

	corpus, err := deps.Corpora.Corpus(deps.Ctx, corpusID)
	if err != nil {
		return nil, err
	}

	entry, err := refbot.ResolveEntry(corpus, deps.Matcher, query)
	if err != nil {
		return nil, err
	}

	return card.PagesFromModel(refbot.RenderEntry(entry), deps.Config.PageSize), nil
}

func printPage(deps *Dependencies, page *refbot.Page) {
	if page.Title != "" {
		fmt.Fprintln(deps.Stdout, page.Title)
	}
	if page.Body != "" {
		fmt.Fprintln(deps.Stdout, page.Body)
	}
	for _, field := range page.Fields {
		fmt.Fprintf(deps.Stdout, "\n%s\n%s\n", field.Label, field.Value)
	}
	if page.Link != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", page.Link)
	}
	if page.Attribution != "" {
		fmt.Fprintln(deps.Stdout, page.Attribution)
	}
	if page.Footer != "" {
		fmt.Fprintln(deps.Stdout, page.Footer)
	}
}
