package cli_cmds

import (
	"github.com/spf13/pflag"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/filter"
)

// filterFlags binds the structured filter to command line flags
type filterFlags struct {
	income      bool
	expenditure bool
	transfer    bool
	repeating   string
	categories  []int64
	tags        []int64
	name        string

	flags *pflag.FlagSet
}

func (f *filterFlags) register(flags *pflag.FlagSet) {
	f.flags = flags
	flags.BoolVar(&f.income, "income", true, "Include income")
	flags.BoolVar(&f.expenditure, "expenditure", true, "Include expenditure")
	flags.BoolVar(&f.transfer, "transfer", true, "Include transfers (needs a concrete account)")
	flags.StringVar(&f.repeating, "repeating", filter.RepeatingAny.String(), "Repeating transactions: any, only (only-repeating) or none (only-non-repeating)")
	flags.Int64SliceVar(&f.categories, "category", nil, "Only these category IDs")
	flags.Int64SliceVar(&f.tags, "tag", nil, "Only transactions carrying one of these tag IDs")
	flags.StringVar(&f.name, "name", "", "Only names containing this text")
}

// configuration builds the filter. Category and tag sets constrain only when given.
func (f *filterFlags) configuration() (filter.Configuration, error) {
	repeating, err := filter.ParseRepeatingFilter(f.repeating)
	if err != nil {
		return filter.Configuration{}, err
	}

	opts := []filter.Option{
		filter.WithIncome(f.income),
		filter.WithExpenditure(f.expenditure),
		filter.WithTransfer(f.transfer),
		filter.WithRepeating(repeating),
		filter.WithName(f.name),
	}
	if f.flags != nil && f.flags.Changed("category") {
		opts = append(opts, filter.WithCategories(f.categories...))
	}
	if f.flags != nil && f.flags.Changed("tag") {
		opts = append(opts, filter.WithTags(f.tags...))
	}

	return filter.NewConfiguration(opts...)
}
