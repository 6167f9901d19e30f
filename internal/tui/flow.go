package tui

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"smoothies/internal/model"
	"smoothies/internal/service"
)

type Flow struct {
	catalogs service.CatalogLoader
	enricher *service.Enricher
	orders   *service.OrderService
	prompt   Prompter
	out      io.Writer
	logger   *zap.Logger
}

func NewFlow(catalogs service.CatalogLoader, enricher *service.Enricher, orders *service.OrderService, prompt Prompter, out io.Writer, logger *zap.Logger) *Flow {
	return &Flow{
		catalogs: catalogs,
		enricher: enricher,
		orders:   orders,
		prompt:   prompt,
		out:      out,
		logger:   logger,
	}
}

// Run walks one customer through name, selection, nutrition and submission.
// Only a catalog failure or a failed write is returned as an error; lookup
// problems are printed and the flow goes on.
func (f *Flow) Run(ctx context.Context) error {
	catalog, err := f.catalogs.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(f.out, titleStyle.Render("Customize Your Smoothie"))
	fmt.Fprintln(f.out, "Choose the fruits you want in your custom Smoothie!")

	rawName, err := f.prompt.Input(ctx, "Name on Smoothie:")
	if err != nil {
		return err
	}
	name := service.SanitizeName(rawName)
	fmt.Fprintf(f.out, "The name on your Smoothie will be: %s\n", name)

	picks, err := f.prompt.MultiSelect(ctx,
		fmt.Sprintf("Choose up to %d ingredients", model.MaxSelections),
		catalog.Names(), model.MaxSelections)
	if err != nil {
		return err
	}

	sel, err := model.NewSelection(picks...)
	if err != nil {
		return err
	}
	if sel.Empty() {
		fmt.Fprintln(f.out, "No ingredients chosen.")
		return nil
	}

	for _, item := range f.enricher.Enrich(ctx, catalog, sel) {
		printItem(f.out, item)
	}
	fmt.Fprintln(f.out, sel.Ingredients())

	if err := f.orders.CheckPreconditions(sel, name); err != nil {
		fmt.Fprintln(f.out, errorStyle.Render(err.Error()))
		return nil
	}

	submit, err := f.prompt.Confirm(ctx, "Submit Order?")
	if err != nil {
		return err
	}
	if !submit {
		return nil
	}

	order, err := f.orders.Submit(ctx, sel, name)
	if err != nil {
		fmt.Fprintln(f.out, errorStyle.Render(fmt.Sprintf("Order submission failed: %v", err)))
		return err
	}

	fmt.Fprintln(f.out, successStyle.Render(order.Confirmation()))
	f.logger.Debug("terminal order submitted", zap.Int64("order_uid", order.ID))
	return nil
}
