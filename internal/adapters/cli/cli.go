package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"gastrodesk/internal/app"
	"gastrodesk/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "cost", "c":
		if len(args) < 2 {
			log.Fatal("Usage: app cost <recipe-code>")
		}
		costed, err := svc.CostRecipe(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to cost recipe: %v", err)
		}
		printCostedRecipe(costed)

	case "menu", "m":
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		result, err := svc.CostMenu(ctx, category)
		if err != nil {
			log.Fatalf("Failed to cost menu: %v", err)
		}
		printMenu(result)

	case "balance", "bal", "b":
		if len(args) < 4 {
			log.Fatal("Usage: app balance <employee-code> <from> <to>")
		}
		report, err := svc.GetBalance(ctx, args[1], args[2], args[3])
		if err != nil {
			log.Fatalf("Failed to compute balance: %v", err)
		}
		printBalance(report)

	case "roster", "r":
		if len(args) < 2 {
			log.Fatal("Usage: app roster <week-start> [constraints]")
		}
		constraints := ""
		if len(args) > 2 {
			constraints = strings.Join(args[2:], " ")
		}
		runRosterDraft(ctx, svc, args[1], constraints)

	case "appcc", "a":
		if len(args) < 2 {
			log.Fatal("Usage: app appcc <date>")
		}
		result, err := svc.GetAppccDay(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to load APPCC day: %v", err)
		}
		printAppccDay(result)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: cost, menu, balance, roster, appcc", args[0])
	}
}

// runRosterDraft asks the agent for a week's roster, shows it, and persists
// only after an explicit yes.
func runRosterDraft(ctx context.Context, svc app.ApplicationService, weekStart, constraints string) {
	fmt.Println("Drafting roster...")
	proposal, err := svc.ProposeRoster(ctx, weekStart, constraints)
	if err != nil {
		log.Fatalf("Agent error: %v", err)
	}

	printProposal(proposal)
	if proposal.Confidence < 0.6 {
		fmt.Println("\nWARNING: Low confidence proposal.")
	}

	fmt.Print("\nApply this roster? (y/n): ")
	reader := bufio.NewReader(os.Stdin)
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(strings.ToLower(choice))

	if choice != "y" && choice != "yes" {
		fmt.Println("Roster discarded.")
		return
	}
	if err := svc.ApplyRoster(ctx, *proposal); err != nil {
		log.Fatalf("Apply FAILED: %v", err)
	}
	fmt.Println("Roster APPLIED.")
}

func printCostedRecipe(c *core.CostedRecipe) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %s — %s (%d servings)\n", c.Recipe.Code, c.Recipe.Name, c.Recipe.Servings)
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %-24s %10s %12s %12s\n", "INGREDIENT", "GROSS", "COST", "")
	fmt.Println(strings.Repeat("-", 72))
	for _, line := range c.Breakdown {
		name := line.IngredientName
		if !line.Resolved {
			name = line.Line.IngredientRef + " (?)"
		}
		fmt.Printf("  %-24s %10s %12s\n", name, line.GrossQuantity.StringFixed(3), line.Cost.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("  %-24s %23s\n", "TOTAL COST", c.Financials.TotalCost.StringFixed(2))
	fmt.Printf("  %-24s %23s\n", "COST / SERVING", c.Financials.CostPerServing.StringFixed(2))
	fmt.Printf("  %-24s %22s%%\n", "FOOD COST", c.Financials.FoodCostPct.StringFixed(1))
	fmt.Printf("  %-24s %23s\n", "NET BENEFIT", c.Financials.NetBenefit.StringFixed(2))
	fmt.Printf("  %-24s %23s\n", "RECOMMENDED PVP", c.Financials.RecommendedPVP.StringFixed(2))
	fmt.Println(strings.Repeat("=", 72))
}

func printMenu(result *app.MenuCostResult) {
	fmt.Println()
	fmt.Printf("  %-10s %-28s %10s %10s %8s\n", "CODE", "NAME", "COST/SRV", "PVP", "FC%")
	fmt.Println(strings.Repeat("-", 72))
	for _, c := range result.Recipes {
		fmt.Printf("  %-10s %-28s %10s %10s %7s%%\n",
			c.Recipe.Code, c.Recipe.Name,
			c.Financials.CostPerServing.StringFixed(2),
			c.Recipe.PVP.StringFixed(2),
			c.Financials.FoodCostPct.StringFixed(1))
	}
	fmt.Println(strings.Repeat("-", 72))
}

func printBalance(r *core.BalanceReport) {
	fmt.Println()
	fmt.Printf("  Employee : %s — %s\n", r.EmployeeCode, r.EmployeeName)
	fmt.Printf("  Range    : %s .. %s\n", r.From, r.To)
	fmt.Printf("  Worked   : %.2f h\n", r.WorkedHours)
	fmt.Printf("  Target   : %.2f h/month\n", r.TargetHours)
	fmt.Printf("  Balance  : %+.2f h\n", r.Balance)
}

func printProposal(p *core.RosterProposal) {
	fmt.Printf("\nWEEK:       %s\n", p.WeekStart)
	fmt.Printf("SUMMARY:    %s\n", p.Summary)
	fmt.Printf("REASONING:  %s\n", p.Reasoning)
	fmt.Printf("CONFIDENCE: %.2f\n", p.Confidence)
	fmt.Println("CELLS:")
	for _, cell := range p.Cells {
		fmt.Printf("  %s  %-8s %s\n", cell.Date, cell.EmployeeCode, cell.ShiftCode)
	}
}

func printAppccDay(result *app.AppccDayResult) {
	s := result.Summary
	fmt.Printf("\nAPPCC %s — %d readings, %d cleaning entries\n", s.Date, s.Readings, s.CleaningEntries)
	if len(s.NonConform) == 0 {
		fmt.Println("All readings conform.")
	} else {
		fmt.Println("NON-CONFORM READINGS:")
		for _, l := range s.NonConform {
			fmt.Printf("  %s  %-20s %.1f°C (%s)\n",
				l.RecordedAt.Format("15:04"), l.EquipmentName, l.Temperature, l.Notes)
		}
	}
	for _, l := range result.Cleanings {
		fmt.Printf("  cleaned: %s — %s (%s)\n", l.Area, l.Task, l.CompletedBy)
	}
}
