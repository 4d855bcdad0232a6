package cli

import (
	"github.com/spf13/cobra"

	"github.com/mockario/mockario/pkg/admin"
	"github.com/mockario/mockario/pkg/cli/internal/output"
	"github.com/mockario/mockario/pkg/faker"
)

func newGenerateCommand() *cobra.Command {
	var (
		keys  []string
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print fake records without a server",
		Long: `Generate fake records locally.

Each key is a field name, optionally followed by ":type" naming a faker
method. Without a type the method is inferred from the field name.`,
		Example: `  mockario generate --keys id:uuid,name,email,age:number --count 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []faker.Option
			if seed != 0 {
				opts = append(opts, faker.WithSeed(seed))
			}
			if count > admin.MaxGenerateCount {
				output.Warn(cmd.ErrOrStderr(), "count %d exceeds the limit, generating %d records", count, admin.MaxGenerateCount)
				count = admin.MaxGenerateCount
			}
			records := faker.New(opts...).Records(keys, max(count, 1))
			return output.JSON(cmd.OutOrStdout(), records)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&keys, "keys", "k", nil, "Field specifiers, e.g. name,email:email")
	flags.IntVarP(&count, "count", "c", 1, "Number of records")
	flags.Uint64Var(&seed, "seed", 0, "Seed for reproducible output")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}
