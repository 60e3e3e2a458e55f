// Package codec reads and writes the inventory flat-file format:
//
//	<id>,<name>,<quantity>,<price>,<category>\n
//
// One product per line, no header, no quoting. Ids are written for reference
// but discarded on load; the catalog assigns fresh ones.
package codec

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mini-inventory/internal/model"
	"mini-inventory/internal/storage"
)

const fieldCount = 5

// MaxLineLength is the longest line, newline included, that Save writes and Decode reads.
const MaxLineLength = 1024 * 1024

// Record is one decoded line.
type Record struct {
	SourceID int
	Input    model.ProductInput
}

// Adder receives decoded products. *catalog.Catalog satisfies it.
type Adder interface {
	Add(in model.ProductInput) model.Product
}

// Encode writes products in order, one line each.
func Encode(w io.Writer, products []model.Product) error {
	if err := validate(products); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, p := range products {
		if _, err := bw.WriteString(formatLine(p)); err != nil {
			return model.NewIOFailure("failed to write product line", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return model.NewIOFailure("failed to flush product lines", err)
	}
	return nil
}

// Decode parses every line of r. It stops at the first malformed line.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			return nil, model.NewInvalidInput(fmt.Sprintf("malformed product on line %d", lineNo), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, model.NewInvalidInput(fmt.Sprintf("product on line %d exceeds %d bytes", lineNo+1, MaxLineLength), err)
		}
		return nil, model.NewIOFailure("failed to read product lines", err)
	}

	return records, nil
}

// Save truncates the destination and streams products into it.
// A failure part-way through can leave a partially written destination.
func Save(ctx context.Context, store storage.Store, name string, products []model.Product) error {
	if err := validate(products); err != nil {
		return err
	}

	wc, err := store.Create(ctx, name)
	if err != nil {
		return model.NewIOFailure(fmt.Sprintf("failed to open %s for writing", name), err)
	}

	if err := Encode(wc, products); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return model.NewIOFailure(fmt.Sprintf("failed to finish writing %s", name), err)
	}
	return nil
}

// Read opens and decodes the whole source without adding anything.
func Read(ctx context.Context, store storage.Store, name string) ([]Record, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, model.NewIOFailure(fmt.Sprintf("failed to open %s", name), err)
	}
	defer rc.Close()

	records, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return records, nil
}

// Apply adds records, in order, through adder.
func Apply(records []Record, adder Adder) []model.Product {
	added := make([]model.Product, 0, len(records))
	for _, rec := range records {
		added = append(added, adder.Add(rec.Input))
	}
	return added
}

// Load decodes the whole source and only then adds each product, in file
// order, through adder. A malformed line aborts before anything is added.
func Load(ctx context.Context, store storage.Store, name string, adder Adder) ([]model.Product, error) {
	records, err := Read(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return Apply(records, adder), nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return Record{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("invalid id %q: %w", fields[0], err)
	}
	quantity, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("invalid quantity %q: %w", fields[2], err)
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid price %q: %w", fields[3], err)
	}

	return Record{
		SourceID: id,
		Input: model.ProductInput{
			Name:     fields[1],
			Quantity: quantity,
			Price:    price,
			Category: fields[4],
		},
	}, nil
}

func formatLine(p model.Product) string {
	return strconv.Itoa(p.ID) + "," +
		p.Name + "," +
		strconv.Itoa(p.Quantity) + "," +
		model.FormatPrice(p.Price) + "," +
		p.Category + "\n"
}

// validate rejects text fields the line format cannot represent and lines
// Decode would refuse to read back.
func validate(products []model.Product) error {
	for _, p := range products {
		if n := len(formatLine(p)); n > MaxLineLength {
			return model.NewInvalidInput(fmt.Sprintf("product %d: line of %d bytes exceeds %d", p.ID, n, MaxLineLength), nil)
		}
		if strings.ContainsAny(p.Name, ",\r\n") {
			return model.NewInvalidInput(fmt.Sprintf("product %d: name %q cannot contain commas or line breaks", p.ID, p.Name), nil)
		}
		if strings.ContainsAny(p.Category, ",\r\n") {
			return model.NewInvalidInput(fmt.Sprintf("product %d: category %q cannot contain commas or line breaks", p.ID, p.Category), nil)
		}
	}
	return nil
}
