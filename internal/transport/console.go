// Package transport is the presentation glue: it translates terminal input
// into typed intents against the services and renders typed records back.
// All formatting lives here; the core emits none.
package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stockroom/internal/domain"
	"stockroom/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Console handles terminal intents for inventory and roster operations.
type Console struct {
	inventory service.InventoryService
	students  service.StudentService
	logger    *zap.Logger
	in        *bufio.Scanner
	out       io.Writer
}

// NewConsole creates a new Console over the given reader and writer.
func NewConsole(inventory service.InventoryService, students service.StudentService, logger *zap.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		inventory: inventory,
		students:  students,
		logger:    logger,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run reads intents line by line until EOF, "quit", or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, `stockroom - type "help" for commands`)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			c.printHelp()
		case "list":
			c.handleList(ctx)
		case "categories":
			c.handleCategories(ctx)
		case "add":
			c.handleAdd(ctx, rest)
		case "edit":
			c.handleEdit(ctx, rest)
		case "delete":
			c.handleDelete(ctx, rest)
		case "filter":
			c.handleFilter(rest)
		case "students":
			c.handleStudents(ctx, rest)
		default:
			fmt.Fprintf(c.out, "unknown command %q\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `commands:
  list                                 show the filtered, sorted view
  categories                           show distinct categories
  add <name> <category> <qty> <price>  create an item
  edit <id> <name> <category> <qty> <price>
  delete <id>                          request deletion (asks to confirm)
  filter category|search <value>
  filter sort <name|category|quantity|price|lastUpdated> <asc|desc>
  filter clear
  students list
  students add <name> <class> <section> <roll>
  students remove <id>
  quit
`)
}

func (c *Console) handleList(ctx context.Context) {
	items, err := c.inventory.View(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "(no items)")
		return
	}
	for _, it := range items {
		fmt.Fprintf(c.out, "%s  %-20s %-12s qty=%-5d price=%-8s updated=%s\n",
			it.ID, it.Name, it.Category, it.Quantity, it.Price.StringFixed(2),
			it.LastUpdated.Format("2006-01-02 15:04:05"),
		)
	}
}

func (c *Console) handleCategories(ctx context.Context) {
	categories, err := c.inventory.Categories(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	for _, cat := range categories {
		fmt.Fprintln(c.out, cat)
	}
}

func (c *Console) handleAdd(ctx context.Context, rest string) {
	fields, err := parseItemFields(strings.Fields(rest))
	if err != nil {
		c.printError(err)
		return
	}

	item, err := c.inventory.AddItem(ctx, *fields)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "added %s (%s)\n", item.Name, item.ID)
}

func (c *Console) handleEdit(ctx context.Context, rest string) {
	args := strings.Fields(rest)
	if len(args) < 1 {
		fmt.Fprintln(c.out, "usage: edit <id> <name> <category> <qty> <price>")
		return
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		c.printError(fmt.Errorf("invalid id: %w", err))
		return
	}
	fields, err := parseItemFields(args[1:])
	if err != nil {
		c.printError(err)
		return
	}

	item, err := c.inventory.EditItem(ctx, domain.Item{
		ID:       id,
		Name:     fields.Name,
		Category: fields.Category,
		Quantity: fields.Quantity,
		Price:    fields.Price,
	})
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "updated %s\n", item.ID)
}

// handleDelete renders the coordinator's two-phase confirmation: the request
// only arms it, and the store is touched on an explicit "y" alone.
func (c *Console) handleDelete(ctx context.Context, rest string) {
	id, err := uuid.Parse(strings.TrimSpace(rest))
	if err != nil {
		c.printError(fmt.Errorf("invalid id: %w", err))
		return
	}

	c.inventory.RequestDelete(id)
	fmt.Fprintf(c.out, "delete %s? [y/N] ", id)
	if !c.in.Scan() {
		c.inventory.CancelDelete()
		return
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	if answer != "y" && answer != "yes" {
		c.inventory.CancelDelete()
		fmt.Fprintln(c.out, "cancelled")
		return
	}

	if err := c.inventory.ConfirmDelete(ctx); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, "deleted")
}

func (c *Console) handleFilter(rest string) {
	args := strings.Fields(rest)
	if len(args) == 0 {
		f := c.inventory.Filters()
		fmt.Fprintf(c.out, "category=%q search=%q sort=%s %s\n", f.Category, f.Search, f.SortBy, f.SortOrder)
		return
	}

	var change domain.FilterChange
	switch args[0] {
	case "category":
		value := strings.Join(args[1:], " ")
		change.Category = &value
	case "search":
		value := strings.Join(args[1:], " ")
		change.Search = &value
	case "sort":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "usage: filter sort <field> [asc|desc]")
			return
		}
		field := domain.SortField(args[1])
		change.SortBy = &field
		if len(args) > 2 {
			order := domain.SortOrder(args[2])
			change.SortOrder = &order
		}
	case "clear":
		empty := ""
		defaults := domain.DefaultFilterState()
		change = domain.FilterChange{
			Category:  &empty,
			Search:    &empty,
			SortBy:    &defaults.SortBy,
			SortOrder: &defaults.SortOrder,
		}
	default:
		fmt.Fprintf(c.out, "unknown filter field %q\n", args[0])
		return
	}

	c.inventory.ChangeFilters(change)
}

func (c *Console) handleStudents(ctx context.Context, rest string) {
	args := strings.Fields(rest)
	if len(args) == 0 {
		fmt.Fprintln(c.out, "usage: students list|add|remove")
		return
	}

	switch args[0] {
	case "list":
		students, err := c.students.Students(ctx)
		if err != nil {
			c.printError(err)
			return
		}
		if len(students) == 0 {
			fmt.Fprintln(c.out, "(no students)")
			return
		}
		for _, st := range students {
			fmt.Fprintf(c.out, "%s  %-20s class=%s-%s roll=%s\n",
				st.ID, st.Name, st.Class, st.Section, st.RollNumber)
		}
	case "add":
		if len(args) < 5 {
			fmt.Fprintln(c.out, "usage: students add <name> <class> <section> <roll>")
			return
		}
		student, err := c.students.AddStudent(ctx, domain.StudentFields{
			Name:       args[1],
			Class:      args[2],
			Section:    args[3],
			RollNumber: args[4],
		})
		if err != nil {
			c.printError(err)
			return
		}
		fmt.Fprintf(c.out, "added %s (%s)\n", student.Name, student.ID)
	case "remove":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "usage: students remove <id>")
			return
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			c.printError(fmt.Errorf("invalid id: %w", err))
			return
		}
		if err := c.students.RemoveStudent(ctx, id); err != nil {
			c.printError(err)
			return
		}
		fmt.Fprintln(c.out, "removed")
	default:
		fmt.Fprintf(c.out, "unknown students command %q\n", args[0])
	}
}

func (c *Console) printError(err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrStudentNotFound):
		fmt.Fprintf(c.out, "not found: %v\n", err)
	case errors.Is(err, domain.ErrValidation):
		fmt.Fprintf(c.out, "invalid input: %v\n", err)
	default:
		c.logger.Error("command failed", zap.Error(err))
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
}

func parseItemFields(args []string) (*domain.ItemFields, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("%w: expected <name> <category> <qty> <price>", domain.ErrValidation)
	}

	quantity, err := strconv.Atoi(args[len(args)-2])
	if err != nil {
		return nil, fmt.Errorf("%w: quantity: %v", domain.ErrValidation, err)
	}
	price, err := decimal.NewFromString(args[len(args)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: price: %v", domain.ErrValidation, err)
	}

	return &domain.ItemFields{
		Name:     args[0],
		Category: strings.Join(args[1:len(args)-2], " "),
		Quantity: quantity,
		Price:    price,
	}, nil
}
