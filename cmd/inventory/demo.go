package main

import (
	"context"
	"flag"
	"fmt"

	"mini-inventory/internal/model"

	"github.com/google/subcommands"
)

// demoCmd replays the sample session: log in, stock three products, sell some
// of each, print both reports, then save the inventory and load it back.
type demoCmd struct {
	*app
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "run the sample inventory session" }
func (*demoCmd) Usage() string {
	return `inventory -user <name> -password <pw> [-file <path>] demo

  Starts from an empty inventory, records three sales, prints the reports and
  round-trips the inventory through -file.
`
}

func (*demoCmd) SetFlags(*flag.FlagSet) {}

func (c *demoCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.login(false); err != nil {
		fmt.Fprintln(c.out, "Authentication failed. Exiting program.")
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.out, "Authentication successful.")

	svc := c.newService()

	stock := []model.ProductInput{
		{Name: "Laptop", Quantity: 10, Price: 350, Category: "Electronics"},
		{Name: "Iphone", Quantity: 10, Price: 800, Category: "Electronics"},
		{Name: "Airpods", Quantity: 10, Price: 290, Category: "Electronics"},
	}
	for _, in := range stock {
		svc.AddProduct(ctx, in)
	}

	sales := []struct {
		product  string
		quantity int
	}{
		{"Laptop", 2},
		{"Iphone", 8},
		{"Airpods", 9},
	}
	for _, s := range sales {
		_, err := svc.RecordTransaction(ctx, model.TransactionRequest{
			ProductName: s.product,
			Quantity:    s.quantity,
			Type:        model.TransactionSale,
		})
		if err != nil {
			return fail(err)
		}
	}

	fmt.Fprint(c.out, svc.InventoryReport(ctx))
	fmt.Fprint(c.out, svc.SalesReport(ctx))

	if err := svc.Save(ctx, c.file); err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.out, "Inventory saved to file: %s\n", c.file)

	if _, err := svc.Load(ctx, c.file); err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.out, "Inventory loaded from file: %s\n", c.file)

	return subcommands.ExitSuccess
}
