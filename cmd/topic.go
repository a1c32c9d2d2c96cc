package cmd

import (
	"context"
	"flag"

	"github.com/etnz/microcap/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "print the documentation topics" }
func (*topicCmd) Usage() string {
	return `topic [<name> ...]:

  Prints the named documentation topics, or the index when none is
  given. Use '*' to print everything.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	content, err := docs.GetTopics(names...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
