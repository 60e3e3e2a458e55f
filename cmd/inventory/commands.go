package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"mini-inventory/internal/model"
	"mini-inventory/internal/report"

	"github.com/google/subcommands"
)

// listCmd prints the inventory listing.
type listCmd struct {
	*app
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print the inventory" }
func (*listCmd) Usage() string {
	return `inventory [-file <path>] list

  Prints every product in the inventory file.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}
	fmt.Fprint(c.out, svc.InventoryReport(ctx))
	return subcommands.ExitSuccess
}

// addCmd adds a product.
type addCmd struct {
	*app
	in model.ProductInput
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a product (admin)" }
func (*addCmd) Usage() string {
	return `inventory -user <name> -password <pw> add -name <name> -quantity <n> -price <p> -category <c>

  Adds a product under the next free id and saves the inventory file.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in.Name, "name", "", "Product name")
	f.IntVar(&c.in.Quantity, "quantity", 0, "Quantity in stock")
	f.Float64Var(&c.in.Price, "price", 0, "Unit price")
	f.StringVar(&c.in.Category, "category", "", "Product category")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.login(true); err != nil {
		return fail(err)
	}
	if c.in.Name == "" {
		fmt.Fprintln(c.out, "-name is required")
		return subcommands.ExitUsageError
	}

	svc, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}

	p := svc.AddProduct(ctx, c.in)
	if err := svc.Save(ctx, c.file); err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "Added product %d: %s\n", p.ID, p.Name)
	return subcommands.ExitSuccess
}

// updateCmd overwrites the flagged fields of a product.
type updateCmd struct {
	*app
	id int
	in model.ProductInput
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "update a product (admin)" }
func (*updateCmd) Usage() string {
	return `inventory -user <name> -password <pw> update -id <id> [-name <name>] [-quantity <n>] [-price <p>] [-category <c>]

  Changes the given fields of a product; fields without a flag keep their value.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "id", 0, "Product id")
	f.StringVar(&c.in.Name, "name", "", "New product name")
	f.IntVar(&c.in.Quantity, "quantity", 0, "New quantity in stock")
	f.Float64Var(&c.in.Price, "price", 0, "New unit price")
	f.StringVar(&c.in.Category, "category", "", "New product category")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.login(true); err != nil {
		return fail(err)
	}

	svc, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}

	p, found := svc.GetProductByID(ctx, c.id)
	if !found {
		return fail(fmt.Errorf("product %d: %w", c.id, model.ErrProductNotFound))
	}

	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			p.Name = c.in.Name
		case "quantity":
			p.Quantity = c.in.Quantity
		case "price":
			p.Price = c.in.Price
		case "category":
			p.Category = c.in.Category
		}
	})

	svc.UpdateProduct(ctx, p)
	if err := svc.Save(ctx, c.file); err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "Updated product %d\n", p.ID)
	return subcommands.ExitSuccess
}

// removeCmd deletes a product.
type removeCmd struct {
	*app
	id int
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a product (admin)" }
func (*removeCmd) Usage() string {
	return `inventory -user <name> -password <pw> remove -id <id>

  Removes a product. Removing an unknown id is not an error.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "id", 0, "Product id")
}

func (c *removeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.login(true); err != nil {
		return fail(err)
	}

	svc, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}

	if !svc.RemoveProduct(ctx, c.id) {
		fmt.Fprintf(c.out, "No product with id %d\n", c.id)
		return subcommands.ExitSuccess
	}
	if err := svc.Save(ctx, c.file); err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "Removed product %d\n", c.id)
	return subcommands.ExitSuccess
}

// recordCmd records a sale or purchase and saves the resulting stock level.
type recordCmd struct {
	*app
	product  string
	quantity int
	date     string
	typ      string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a sale or purchase" }
func (*recordCmd) Usage() string {
	return `inventory -user <name> -password <pw> record -product <name> -quantity <n> [-type SALE|PURCHASE] [-date YYYY-MM-DD]

  Records a transaction against a product and saves the new stock level.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product name")
	f.IntVar(&c.quantity, "quantity", 0, "Quantity sold or purchased")
	f.StringVar(&c.date, "date", "", "Transaction date (defaults to today)")
	f.StringVar(&c.typ, "type", string(model.TransactionSale), "Transaction type (SALE or PURCHASE)")
}

func (c *recordCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.login(false); err != nil {
		return fail(err)
	}

	typ, err := model.ParseTransactionType(c.typ)
	if err != nil {
		return fail(err)
	}

	var date time.Time
	if c.date != "" {
		date, err = time.Parse(report.DateLayout, c.date)
		if err != nil {
			return fail(model.NewInvalidInput("date must be YYYY-MM-DD", err))
		}
	}

	svc, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}

	tx, err := svc.RecordTransaction(ctx, model.TransactionRequest{
		ProductName: c.product,
		Quantity:    c.quantity,
		Date:        date,
		Type:        typ,
	})
	if err != nil {
		return fail(err)
	}
	if err := svc.Save(ctx, c.file); err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "Recorded transaction %d: %s %d x %s on %s\n",
		tx.ID, tx.Type, tx.Quantity, c.product, tx.Date.Format(report.DateLayout))
	return subcommands.ExitSuccess
}

// reportCmd prints or exports a report.
type reportCmd struct {
	*app
	kind   string
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the inventory or sales report" }
func (*reportCmd) Usage() string {
	return `inventory report [-kind inventory|sales] [-o <path>]

  Prints a report, or writes the sales report to -o. Transactions are not
  stored in the inventory file, so a sales report only covers this run.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "inventory", "Report kind (inventory, sales)")
	f.StringVar(&c.output, "o", "", "Write the sales report to this path instead of stdout")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}

	switch c.kind {
	case "inventory":
		fmt.Fprint(c.out, svc.InventoryReport(ctx))
	case "sales":
		if c.output != "" {
			if err := svc.ExportSalesReport(ctx, c.output); err != nil {
				return fail(err)
			}
			fmt.Fprintf(c.out, "Sales report written to %s\n", c.output)
			return subcommands.ExitSuccess
		}
		fmt.Fprint(c.out, svc.SalesReport(ctx))
	default:
		fmt.Fprintf(c.out, "unknown report kind %q\n", c.kind)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
