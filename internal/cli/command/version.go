package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/catchdb/catchdb-go/internal/cli/output"
	"github.com/catchdb/catchdb-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			f, err := output.ParseFormat(c.String("output"))
			if err != nil {
				return err
			}
			if f == output.FormatRaw || f == output.FormatTable {
				_, err := fmt.Fprintf(c.App.Writer, "catchdb-cli %s\n", buildinfo.String())
				return err
			}
			return output.NewFormatter(f).Format(c.App.Writer, buildinfo.Get())
		},
	}
}
