package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wichananm65/skincare-storefront/internal/product"
)

func (c *CLI) newProductsCmd() *cobra.Command {
	var (
		filters    product.Filters
		sortKey    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Query the embedded catalog",
		Example: `  storefront products --skin-type Oily,Dry --sort price-low
  storefront products --concern Acne --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := product.Seed()
			if err != nil {
				return err
			}
			key, ok := product.ParseSortKey(sortKey)
			if !ok {
				c.logger.Warn("unknown sort key", zap.String("sort", sortKey), zap.String("using", string(key)))
			}
			results := product.NewService(product.NewInMemoryRepository(seed)).Query(filters, key)

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tCATEGORY\tPRICE\tRATING\tSKIN TYPES")
			for _, p := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\n",
					p.Slug, p.Category, p.Price.StringFixed(2), p.Rating, strings.Join(p.SkinTypes, ","))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d product(s)\n", len(results))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&filters.SkinTypes, "skin-type", nil, "skin types to match (any)")
	cmd.Flags().StringSliceVar(&filters.Categories, "category", nil, "categories to match (any)")
	cmd.Flags().StringSliceVar(&filters.Concerns, "concern", nil, "concerns to match (any)")
	cmd.Flags().StringVar(&sortKey, "sort", string(product.SortPopularity), "popularity, newest, price-low, price-high or rating")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
	return cmd
}
