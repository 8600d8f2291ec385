package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"meal-recommender/internal/config"
	"meal-recommender/internal/database"
	"meal-recommender/internal/dish"
	"meal-recommender/internal/explain"
	"meal-recommender/internal/history"
	"meal-recommender/internal/llm"
	"meal-recommender/internal/metrics"
	"meal-recommender/internal/planner"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/selector"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	corpus, err := loadCorpus(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dish corpus")
	}
	log.Info().Int("dishes", corpus.Len()).Msg("dish corpus loaded")

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	planRepo := history.NewPlanRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	ctx := context.Background()

	textGen, closer, err := buildGenerator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize explanation generator")
	}
	if closer != nil {
		defer closer.Close()
	}

	sel := selector.New(corpus, cfg.TopK)
	explainer := explain.New(textGen, cfg.ExplainTimeout, &log)
	mealPlanner := planner.New(sel, explainer, &log)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		profilePath := planCmd.String("profile", "", "Path to a user profile JSON file")
		planCmd.Parse(os.Args[2:])

		if *profilePath == "" {
			log.Fatal().Msg("plan requires -profile <file.json>")
		}
		if err := runPlan(ctx, &log, mealPlanner, planRepo, metricsStore, *profilePath); err != nil {
			log.Fatal().Err(err).Msg("planning failed")
		}
	case "history":
		historyCmd := flag.NewFlagSet("history", flag.ExitOnError)
		user := historyCmd.String("user", "", "User name to list plans for")
		limit := historyCmd.Int("limit", 5, "Number of plans to show")
		historyCmd.Parse(os.Args[2:])

		if err := runHistory(ctx, planRepo, *user, *limit); err != nil {
			log.Fatal().Err(err).Msg("listing history failed")
		}
	case "corpus-stats":
		printCorpusStats(corpus)
	case "metrics-usage":
		usageCmd := flag.NewFlagSet("metrics-usage", flag.ExitOnError)
		days := usageCmd.Int("days", 7, "Show usage for the last N days")
		usageCmd.Parse(os.Args[2:])

		if err := runMetricsUsage(ctx, metricsStore, *days); err != nil {
			log.Fatal().Err(err).Msg("fetching metrics failed")
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(ctx, *days)
		if err != nil {
			log.Fatal().Err(err).Msg("cleanup failed")
		}
		fmt.Printf("Removed %d old metric records.\n", affected)
	case "sys-health":
		h := metrics.GetSysHealth(filepath.Dir(cfg.DatabasePath))
		fmt.Printf("Alloc: %d MB | Sys: %d MB | GC runs: %d | Goroutines: %d | Data dir: %s\n",
			h.AllocMB, h.SysMB, h.NumGC, h.Goroutines, h.DataDirSize)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func loadCorpus(cfg *config.Config) (*dish.Corpus, error) {
	if cfg.MenuPath != "" {
		return dish.LoadFile(cfg.MenuPath)
	}
	return dish.LoadEmbedded()
}

func buildGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, llm.Closer, error) {
	switch cfg.Generator {
	case config.GeneratorGemini:
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	case config.GeneratorGroq:
		return llm.NewGroqClient(cfg.GroqAPIKey), nil, nil
	default:
		return nil, nil, nil
	}
}

func runPlan(ctx context.Context, log *zerolog.Logger, mealPlanner *planner.Planner, planRepo *history.PlanRepository, metricsStore *metrics.Store, profilePath string) error {
	data, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}

	var up profile.UserProfile
	if err := json.Unmarshal(data, &up); err != nil {
		return fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	result, metas, err := mealPlanner.GeneratePlan(ctx, &up)
	if err != nil {
		return err
	}

	for _, meta := range metas {
		if err := metricsStore.RecordMeta(ctx, meta); err != nil {
			log.Warn().Err(err).Str("slot", meta.Slot).Msg("failed to record generation metric")
		}
	}

	planJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	id, err := planRepo.Save(ctx, up.Name, planJSON)
	if err != nil {
		log.Warn().Err(err).Msg("failed to save plan to history")
	} else {
		log.Info().Str("plan_id", id).Msg("plan saved")
	}

	printPlan(result)
	return nil
}

func printPlan(result *planner.PlanResult) {
	t := result.Targets
	fmt.Println("\n=== TARGETS ===")
	fmt.Printf("BMI: %.1f (%s) | BMR: %.1f | Calories: %d kcal | Protein: %dg\n",
		t.BMI, t.BMICategory, t.BMR, t.CaloricIntake, t.ProteinTargetGrams)

	fmt.Println("\n=== DAILY MEAL PLAN ===")
	for _, slot := range result.Slots {
		if slot.Empty {
			fmt.Printf("%-10s: (no suitable dish: %s)\n", slot.Slot, slot.Note)
			continue
		}
		s := slot.Selected
		fmt.Printf("%-10s: %s (%d kcal, %dg protein)\n", slot.Slot, s.DishName, s.Calories, s.ProteinGrams)
		if slot.Explanation != "" {
			fmt.Printf("            %s\n", slot.Explanation)
		}
	}

	sum := result.Summary
	fmt.Println("\n=== NUTRITIONAL SUMMARY ===")
	fmt.Printf("Total: %d kcal, %dg protein (target %s, %dg)\n",
		sum.TotalCalories, sum.TotalProtein, sum.TargetCalories, sum.DailyProteinTarget)
	fmt.Printf("Protein adequacy: %s (%s)\n", sum.ProteinAdequacy, sum.ProteinGap)
	fmt.Printf("Focus: %s\n", sum.PrimaryFocus)
	fmt.Printf("Dietary notes: %s\n", sum.DietaryNotes)
}

func runHistory(ctx context.Context, planRepo *history.PlanRepository, user string, limit int) error {
	records, err := planRepo.ListRecent(ctx, user, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No stored plans.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %s  %s\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.UserName)
	}
	return nil
}

func printCorpusStats(corpus *dish.Corpus) {
	stats := corpus.ComputeStats()
	fmt.Printf("Total dishes: %d\n", stats.TotalDishes)
	fmt.Println("By slot:")
	for _, slot := range dish.Slots {
		fmt.Printf("  %-10s %d\n", slot, stats.BySlot[slot])
	}
	fmt.Println("By region:")
	for region, n := range stats.ByRegion {
		fmt.Printf("  %-10s %d\n", region, n)
	}
}

func runMetricsUsage(ctx context.Context, store *metrics.Store, days int) error {
	usage, err := store.GetDailyUsage(ctx, days)
	if err != nil {
		return err
	}
	if len(usage) == 0 {
		fmt.Println("No generation metrics recorded.")
		return nil
	}
	for _, u := range usage {
		fmt.Printf("%s  prompts=%d completions=%d calls=%d fallbacks=%d\n",
			u.Date, u.TotalPrompt, u.TotalCompletion, u.TotalExecution, u.Fallbacks)
	}
	return nil
}

func printUsage() {
	fmt.Println("Usage: meal-recommender <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan -profile <file>    Generate a daily meal plan for a user profile")
	fmt.Println("  history -user <name>    List recently generated plans")
	fmt.Println("  corpus-stats            Show dish corpus statistics")
	fmt.Println("  metrics-usage           Show explanation generation usage")
	fmt.Println("  metrics-cleanup         Remove old metric records")
	fmt.Println("  sys-health              Show process health")
}
