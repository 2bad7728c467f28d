package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/catchdb/catchdb-go/internal/cli/output"
	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

// CommandsCommand returns the commands command.
func CommandsCommand() *cli.Command {
	return &cli.Command{
		Name:  "commands",
		Usage: "List the server commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Only list one category: kv, hashmap, zset, queue",
			},
		},
		Action: commandsAction,
	}
}

// commandList renders the command table.
type commandList []catchdb.CommandInfo

func (l commandList) Table() *output.Table {
	t := output.NewTable("NAME", "CATEGORY", "ARITY", "PROPERTY", "USAGE")
	for _, ci := range l {
		t.AddRow(ci.Name, string(ci.Category), strconv.Itoa(ci.Arity), string(ci.Property), ci.Usage)
	}
	return t
}

func commandsAction(c *cli.Context) error {
	f, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	category := catchdb.Category(c.String("category"))
	var list commandList
	for _, ci := range catchdb.Commands() {
		if category == "" || ci.Category == category {
			list = append(list, ci)
		}
	}
	if len(list) == 0 {
		return fmt.Errorf("no commands in category %q", category)
	}

	if f == output.FormatRaw {
		f = output.FormatTable
	}
	return output.NewFormatter(f).Format(c.App.Writer, list)
}
