package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"macromate/internal/app"
	"macromate/internal/config"
	"macromate/internal/database"
	"macromate/internal/macro"
	"macromate/internal/meals"
	"macromate/internal/metrics"
	"macromate/internal/pricing"
	"macromate/internal/shopping"
	"macromate/internal/spoonacular"
	"macromate/internal/usda"
)

const dateLayout = "2006-01-02"

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewDB(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)
	recipeClient := spoonacular.NewClient(cfg, metricsStore)
	foodClient := usda.NewClient(cfg, metricsStore)

	planner := macro.DefaultPlanner()
	goalRepo := macro.NewRepository(db.SQL)
	recipeRepo := meals.NewRepository(db.SQL)
	planRepo := meals.NewPlanRepository(db.SQL)
	listRepo := shopping.NewRepository(db.SQL)

	estimator := pricing.NewEstimator(foodClient, pricing.NewMemoryCache(), pricing.DefaultUnitCostModel(), logger)
	fetcher := meals.NewFetcher(recipeClient, recipeRepo, planner, logger)
	builder := shopping.NewBuilder(fetcher, estimator, logger)

	service := app.NewService(planner, goalRepo, fetcher, recipeRepo, planRepo, builder, listRepo, logger)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "set-goals":
		runSetGoals(ctx, service)
	case "targets":
		runTargets(ctx, service)
	case "suggest":
		runSuggest(ctx, service)
	case "plan":
		runPlan(ctx, service)
	case "totals":
		runTotals(ctx, service)
	case "shopping-list":
		runShoppingList(ctx, service)
	case "weekly":
		runWeekly(ctx, service)
	case "complete":
		runComplete(ctx, service)
	case "usage":
		runUsage(metricsStore)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: macromate <command> [flags]

Commands:
  set-goals      Set daily macro goals for an account
  targets        Show the macro target range for a meal slot
  suggest        Fetch meal suggestions matching the targets
  plan           Save the recipe selections for a date
  totals         Show macro totals for a date's selections
  shopping-list  Generate a shopping list for a date range
  weekly         Generate a shopping list for a full week
  complete       Toggle a shopping list's completion flag
  usage          Show provider call usage`)
}

func runSetGoals(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("set-goals", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	calories := fs.Float64("calories", 0, "daily calories")
	proteins := fs.Float64("protein", 0, "daily protein grams")
	fats := fs.Float64("fat", 0, "daily fat grams")
	carbs := fs.Float64("carbs", 0, "daily carbohydrate grams")
	fs.Parse(os.Args[2:])

	goals := macro.Goals{Calories: *calories, Proteins: *proteins, Fats: *fats, Carbohydrates: *carbs}
	if err := service.SetGoals(ctx, *account, goals); err != nil {
		log.Fatalf("Failed to set goals: %v", err)
	}
	fmt.Println("Goals saved.")
}

func runTargets(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("targets", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	slotName := fs.String("slot", "breakfast", "meal slot")
	fs.Parse(os.Args[2:])

	slot, err := macro.ParseSlot(*slotName)
	if err != nil {
		log.Fatalf("Invalid slot: %v", err)
	}

	target, err := service.PlanTargets(ctx, *account, slot)
	if err != nil {
		log.Fatalf("Failed to compute targets: %v", err)
	}
	printJSON(target)
}

func runSuggest(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	slotName := fs.String("slot", "", "meal slot (empty for all)")
	count := fs.Int("count", meals.DefaultOptionCount, "number of candidates")
	fs.Parse(os.Args[2:])

	if *slotName == "" {
		options, err := service.FetchAllMealOptions(ctx, *account, *count)
		if err != nil {
			log.Fatalf("Failed to fetch meal options: %v", err)
		}
		printJSON(options)
		return
	}

	slot, err := macro.ParseSlot(*slotName)
	if err != nil {
		log.Fatalf("Invalid slot: %v", err)
	}
	options, err := service.FetchMealOptions(ctx, *account, slot, *count)
	if err != nil {
		log.Fatalf("Failed to fetch meal options: %v", err)
	}
	printJSON(options)
}

func runPlan(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	dateStr := fs.String("date", time.Now().Format(dateLayout), "plan date (YYYY-MM-DD)")
	breakfast := fs.Int64("breakfast", 0, "breakfast recipe id (0 for none)")
	lunch := fs.Int64("lunch", 0, "lunch recipe id (0 for none)")
	dinner := fs.Int64("dinner", 0, "dinner recipe id (0 for none)")
	fs.Parse(os.Args[2:])

	date, err := time.Parse(dateLayout, *dateStr)
	if err != nil {
		log.Fatalf("Invalid date: %v", err)
	}

	plan := meals.MealPlan{AccountID: *account, Date: date}
	if *breakfast != 0 {
		plan.Breakfast = breakfast
	}
	if *lunch != 0 {
		plan.Lunch = lunch
	}
	if *dinner != 0 {
		plan.Dinner = dinner
	}

	if err := service.SaveMealPlan(ctx, plan); err != nil {
		log.Fatalf("Failed to save meal plan: %v", err)
	}
	fmt.Println("Meal plan saved.")
}

func runTotals(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("totals", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	dateStr := fs.String("date", time.Now().Format(dateLayout), "plan date (YYYY-MM-DD)")
	fs.Parse(os.Args[2:])

	date, err := time.Parse(dateLayout, *dateStr)
	if err != nil {
		log.Fatalf("Invalid date: %v", err)
	}

	totals, err := service.MealTotals(ctx, *account, date)
	if err != nil {
		log.Fatalf("Failed to compute totals: %v", err)
	}
	printJSON(totals)
}

func runShoppingList(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("shopping-list", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	startStr := fs.String("start", time.Now().Format(dateLayout), "start date (YYYY-MM-DD)")
	endStr := fs.String("end", "", "end date (YYYY-MM-DD, defaults to start)")
	fs.Parse(os.Args[2:])

	start, err := time.Parse(dateLayout, *startStr)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}
	end := start
	if *endStr != "" {
		if end, err = time.Parse(dateLayout, *endStr); err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
	}

	list, err := service.GenerateShoppingList(ctx, *account, start, end)
	if err != nil {
		log.Fatalf("Failed to generate shopping list: %v", err)
	}
	printJSON(list)
}

func runWeekly(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("weekly", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	startStr := fs.String("start", time.Now().Format(dateLayout), "week start date (YYYY-MM-DD)")
	fs.Parse(os.Args[2:])

	start, err := time.Parse(dateLayout, *startStr)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}

	list, err := service.GenerateWeeklyShoppingList(ctx, *account, start)
	if err != nil {
		log.Fatalf("Failed to generate weekly shopping list: %v", err)
	}
	printJSON(list)
}

func runComplete(ctx context.Context, service *app.Service) {
	fs := flag.NewFlagSet("complete", flag.ExitOnError)
	id := fs.Int64("id", 0, "shopping list id")
	undo := fs.Bool("undo", false, "clear the completion flag instead")
	fs.Parse(os.Args[2:])

	list, err := service.MarkShoppingListCompleted(ctx, *id, !*undo)
	if err != nil {
		log.Fatalf("Failed to update shopping list: %v", err)
	}
	printJSON(list)
}

func runUsage(store *metrics.Store) {
	fs := flag.NewFlagSet("usage", flag.ExitOnError)
	days := fs.Int("days", 7, "number of days to report")
	fs.Parse(os.Args[2:])

	usage, err := store.GetDailyUsage(*days)
	if err != nil {
		log.Fatalf("Failed to read usage: %v", err)
	}
	for _, u := range usage {
		fmt.Printf("%s  %-12s calls=%d errors=%d avg_latency=%.0fms\n",
			u.Date, u.Provider, u.Calls, u.Errors, u.AvgLatencyMS)
	}
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render output: %v", err)
	}
	fmt.Println(string(data))
}
