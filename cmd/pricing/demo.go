package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wyfcoding/exactpricing/internal/pricing/application"
)

const demoPlaces = 6

// 演示用的四组股票期权参数
var demoBatches = []application.OptionCommand{
	{UnderlyingPrice: 60, StrikePrice: 65, TimeToMaturity: 0.25, RiskFreeRate: 0.08, Volatility: 0.30},
	{UnderlyingPrice: 100, StrikePrice: 100, TimeToMaturity: 1.0, RiskFreeRate: 0.0, Volatility: 0.2},
	{UnderlyingPrice: 5, StrikePrice: 10, TimeToMaturity: 1.0, RiskFreeRate: 0.12, Volatility: 0.5},
	{UnderlyingPrice: 100, StrikePrice: 100, TimeToMaturity: 30.0, RiskFreeRate: 0.08, Volatility: 0.30},
}

type demoFunc func(ctx context.Context, svc *application.PricingService, w io.Writer) error

var demos = []struct {
	name string
	run  demoFunc
}{
	{"pricing", demoPricing},
	{"parity", demoParity},
	{"mesh", demoMesh},
	{"greeks", demoGreeks},
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "demo [pricing|parity|mesh|greeks|all]",
		Short:     "Print the reference pricing scenarios",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"pricing", "parity", "mesh", "greeks", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			which := "all"
			if len(args) == 1 {
				which = args[0]
			}
			svc := application.NewPricingService(serviceOptions(cfg), nil)
			return runDemo(cmd.Context(), svc, cmd.OutOrStdout(), which)
		},
	}
}

func runDemo(ctx context.Context, svc *application.PricingService, w io.Writer, which string) error {
	ran := false
	for _, d := range demos {
		if which != "all" && which != d.name {
			continue
		}
		ran = true
		if _, err := fmt.Fprintf(w, "== %s ==\n", d.name); err != nil {
			return err
		}
		if err := d.run(ctx, svc, w); err != nil {
			return fmt.Errorf("demo %s: %w", d.name, err)
		}
	}
	if !ran {
		return fmt.Errorf("unknown demo %q", which)
	}
	return nil
}

func withType(cmd application.OptionCommand, optionType, underlying string) application.OptionCommand {
	cmd.OptionType = optionType
	cmd.UnderlyingType = underlying
	return cmd
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func demoPricing(ctx context.Context, svc *application.PricingService, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Batch", "S", "K", "T", "r", "Sigma", "Call", "Put"})
	for i, b := range demoBatches {
		call, err := svc.PriceOption(ctx, withType(b, "CALL", "STOCK"))
		if err != nil {
			return err
		}
		put, err := svc.PriceOption(ctx, withType(b, "PUT", "STOCK"))
		if err != nil {
			return err
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			f(b.UnderlyingPrice), f(b.StrikePrice), f(b.TimeToMaturity), f(b.RiskFreeRate), f(b.Volatility),
			call.Price.StringFixed(demoPlaces), put.Price.StringFixed(demoPlaces),
		})
	}
	table.Render()
	return nil
}

func demoParity(ctx context.Context, svc *application.PricingService, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Batch", "Call", "Put", "Call via parity", "Difference"})
	for i, b := range demoBatches {
		call, err := svc.PriceOption(ctx, withType(b, "CALL", "STOCK"))
		if err != nil {
			return err
		}
		put, err := svc.PriceOption(ctx, withType(b, "PUT", "STOCK"))
		if err != nil {
			return err
		}
		parity, err := svc.CheckParity(ctx, application.ParityCommand{
			Option:        withType(b, "PUT", "STOCK"),
			ObservedPrice: put.Price.InexactFloat64(),
		})
		if err != nil {
			return err
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			call.Price.StringFixed(demoPlaces), put.Price.StringFixed(demoPlaces),
			parity.Price.StringFixed(demoPlaces), parity.Difference.String(),
		})
	}
	table.Render()
	return nil
}

func demoMesh(ctx context.Context, svc *application.PricingService, w io.Writer) error {
	res, err := svc.PriceOverMesh(ctx, application.MeshPricingCommand{
		Option:    withType(demoBatches[3], "PUT", "STOCK"),
		Parameter: "UNDERLYING",
		Start:     99,
		End:       101,
		Step:      1,
	})
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"S", "Put", "Delta", "Gamma"})
	for _, pt := range res.Points {
		table.Append([]string{
			f(pt.Value), pt.Price.StringFixed(demoPlaces),
			pt.Delta.StringFixed(demoPlaces), pt.Gamma.StringFixed(demoPlaces),
		})
	}
	table.Render()
	return nil
}

func demoGreeks(ctx context.Context, svc *application.PricingService, w io.Writer) error {
	futures := application.OptionCommand{
		OptionType: "CALL", UnderlyingType: "FUTURES",
		UnderlyingPrice: 105, StrikePrice: 100, TimeToMaturity: 0.5, RiskFreeRate: 0.1, Volatility: 0.36,
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"h", "Delta", "Delta approx", "Gamma", "Gamma approx"})
	for _, h := range []float64{1, 0.1, 0.01} {
		res, err := svc.ApproximateGreeks(ctx, application.GreeksApproximationCommand{
			Option:    futures,
			DeltaStep: h,
			GammaStep: h,
		})
		if err != nil {
			return err
		}
		table.Append([]string{
			f(h),
			res.Delta.StringFixed(demoPlaces), res.DeltaApprox.StringFixed(demoPlaces),
			res.Gamma.StringFixed(demoPlaces), res.GammaApprox.StringFixed(demoPlaces),
		})
	}
	table.Render()
	return nil
}
